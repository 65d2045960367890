/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/convert"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/report"
	"github.com/ssargent/polyparser/pkg/slot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a summary of a layout or slot",
	Long: `Inspect decodes a file and prints its theme, budget, bridge and mod
details without writing anything.

Examples:
  polyparser inspect bridge.layout
  polyparser inspect bridge.layout.yaml
  polyparser inspect save.slot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd, args[0])
	},
}

func inspect(cmd *cobra.Command, path string) error {
	p := report.New(cmd.OutOrStdout())
	sess := codec.NewSession(sessionOptions())

	kind, format := convert.Classify(path)
	switch kind {
	case convert.KindLayout:
		res, err := layout.DecodeFile(path, sess)
		if err != nil {
			return err
		}
		p.Layout(&res.Layout, res.Warnings)
	case convert.KindLayoutTree:
		data, err := readInput(path)
		if err != nil {
			return err
		}
		l, err := convert.UnmarshalLayout(data, format)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		p.Layout(l, nil)
	case convert.KindSlot:
		res, err := slot.DecodeFile(path, sess)
		if err != nil {
			return err
		}
		p.Slot(&res.Slot, res.Warnings)
	default:
		return fmt.Errorf("cannot inspect %s: expected a .layout, layout tree or .slot file", path)
	}
	return nil
}

var schemaCmd = &cobra.Command{
	Use:       "schema [layout|slot]",
	Short:     "Print the JSON Schema of a readable tree",
	Long:      `Schema prints the JSON Schema describing layout (default) or slot trees, for editors and validators.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"layout", "slot"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := convert.KindLayout
		if len(args) == 1 {
			switch args[0] {
			case "layout":
			case "slot":
				kind = convert.KindSlot
			default:
				return fmt.Errorf("unknown schema %q: want layout or slot", args[0])
			}
		}
		data, err := convert.SchemaJSON(kind)
		if err != nil {
			return err
		}
		if flagOutput != "" && flagOutput != "-" {
			return convert.WriteFile(flagOutput, data)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(schemaCmd)
}
