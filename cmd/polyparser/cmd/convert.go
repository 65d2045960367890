/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert files, choosing the direction from each extension",
	Long: `Convert decodes .layout and .slot binaries to trees and encodes
.layout.json, .layout.jsonc and .layout.yaml trees to binaries.

Examples:
  polyparser convert bridge.layout
  polyparser convert -t yaml a.layout b.slot
  polyparser convert bridge.layout.yaml -o edited.layout`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertFiles(cmd, args)
	},
}

func convertFiles(cmd *cobra.Command, paths []string) error {
	if flagOutput != "" && len(paths) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(paths))
	}
	out := stdout(cmd)
	for _, p := range paths {
		res, err := convert.File(p, convertOptions())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s\n", res.Input, res.Output)
		if res.NewerVersion {
			fmt.Fprintf(out, "  note: written by a newer game version, some data may be missing\n")
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
