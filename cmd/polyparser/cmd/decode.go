/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/convert"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/slot"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a layout binary to a readable tree",
	Long: `Decode reads a layout binary of any supported version and writes it as
JSON or YAML. The input extension is not checked. Use -o - to write the
tree to stdout.

Examples:
  polyparser decode bridge.layout
  polyparser decode -t yaml -o - bridge.layout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := layout.DecodeFile(args[0], codec.NewSession(sessionOptions()))
		if err != nil {
			return err
		}
		return writeTree(cmd, args[0], &res.Layout, res.NewerVersion)
	},
}

var slotCmd = &cobra.Command{
	Use:   "slot <file>",
	Short: "Decode a save slot to a readable tree",
	Long: `Slot reads a save-slot file, including the bridge embedded in it, and
writes it as JSON or YAML. Slots cannot be encoded.

Examples:
  polyparser slot "Drawbridge_Auto-Save.slot"
  polyparser slot -o - save.slot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := slot.DecodeFile(args[0], codec.NewSession(sessionOptions()))
		if err != nil {
			return err
		}
		return writeTree(cmd, args[0], &res.Slot, res.NewerVersion)
	},
}

func writeTree(cmd *cobra.Command, in string, v any, newer bool) error {
	data, err := convert.Marshal(v, flagType, cfg.Output.Indent)
	if err != nil {
		return err
	}
	if flagOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	out := flagOutput
	if out == "" {
		out = in + "." + flagType.Ext()
	}
	if err := convert.WriteFile(out, data); err != nil {
		return err
	}
	fmt.Fprintf(stdout(cmd), "%s -> %s\n", in, out)
	if newer {
		fmt.Fprintln(stdout(cmd), "  note: written by a newer game version, some data may be missing")
	}
	return nil
}

var encodeCmd = &cobra.Command{
	Use:   "encode <tree>",
	Short: "Encode a layout tree to a binary at the latest version",
	Long: `Encode reads a layout tree (JSON, JSON with comments, or YAML, chosen by
extension and defaulting to JSON) and writes a layout binary at the
latest format version.

Examples:
  polyparser encode bridge.layout.json
  polyparser encode notes.yaml -o bridge.layout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		data, err := readInput(in)
		if err != nil {
			return err
		}
		_, format := convert.Classify(in)
		if format == "" {
			format = treeFormatForExt(in)
		}
		l, err := convert.UnmarshalLayout(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}

		out := flagOutput
		if out == "" {
			out = convert.OutputPath(in, format)
			if !strings.HasSuffix(strings.ToLower(out), ".layout") {
				out += ".layout"
			}
		}
		if err := layout.EncodeFile(out, l, codec.NewSession(sessionOptions())); err != nil {
			return err
		}
		fmt.Fprintf(stdout(cmd), "%s -> %s\n", in, out)
		return nil
	},
}

// treeFormatForExt picks a format for a file whose name is not a
// recognised tree name.
func treeFormatForExt(path string) convert.Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return convert.FormatYAML
	case strings.HasSuffix(lower, ".jsonc"):
		return convert.FormatJSONC
	default:
		return convert.FormatJSON
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(slotCmd)
}
