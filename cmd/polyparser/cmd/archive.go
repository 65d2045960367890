/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/archive"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/convert"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/slot"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local archive of layouts and slots",
	Long: `The archive keeps compressed copies of layout and slot files, keyed by
a sortable ID and deduplicated by content.

Examples:
  polyparser archive put bridge.layout save.slot
  polyparser archive list
  polyparser archive export 2Mh3tNJ0... -o restored.layout`,
}

func openArchive(cmd *cobra.Command) (*archive.Archive, error) {
	dir := cfg.Archive.Dir
	if cmd.Flags().Changed("archive-dir") {
		dir, _ = cmd.Flags().GetString("archive-dir")
	}
	return archive.Open(dir)
}

var archivePutCmd = &cobra.Command{
	Use:   "put <file>...",
	Short: "Validate and store files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := stdout(cmd)
		for _, path := range args {
			raw, err := readInput(path)
			if err != nil {
				return err
			}
			meta, err := describe(path, raw)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rec, existing, err := a.Put(raw, meta)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if existing {
				fmt.Fprintf(out, "%s already archived as %s\n", path, rec.ID)
				continue
			}
			fmt.Fprintf(out, "%s archived as %s\n", path, rec.ID)
		}
		return nil
	},
}

// describe decodes raw to check it and build its archive metadata.
func describe(path string, raw []byte) (archive.Meta, error) {
	name := filepath.Base(path)
	sess := codec.NewSession(sessionOptions())
	switch kind, _ := convert.Classify(path); kind {
	case convert.KindLayout:
		res, err := layout.DecodeBytes(raw, sess)
		if err != nil {
			return archive.Meta{}, err
		}
		return archive.LayoutMeta(name, &res.Layout), nil
	case convert.KindSlot:
		res, err := slot.DecodeBytes(raw, sess)
		if err != nil {
			return archive.Meta{}, err
		}
		return archive.SlotMeta(name, &res.Slot), nil
	default:
		return archive.Meta{}, fmt.Errorf("only .layout and .slot files can be archived")
	}
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.List()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "ID\tKIND\tNAME\tVERSION\tTHEME\tSIZE\tARCHIVED")
		for _, rec := range list {
			theme := ""
			if rec.Meta.Kind == archive.KindLayout {
				theme = layout.Theme(rec.Meta.StubKey).Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				rec.ID, rec.Meta.Kind, rec.Meta.Name, rec.Meta.Version, theme,
				humanize.Bytes(uint64(rec.Size)), humanize.Time(rec.CreatedAt()))
		}
		return nil
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print the record of an archived file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := archive.ParseID(args[0])
		if err != nil {
			return err
		}
		a, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Get(id)
		if err != nil {
			return err
		}
		return printJSON(cmd, rec)
	},
}

var archiveExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write an archived file back to disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := archive.ParseID(args[0])
		if err != nil {
			return err
		}
		a, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Get(id)
		if err != nil {
			return err
		}
		raw, err := a.Raw(id)
		if err != nil {
			return err
		}
		out := flagOutput
		if out == "" {
			out = rec.Meta.Name
		}
		if out == "" {
			out = id.String() + "." + rec.Meta.Kind
		}
		if err := convert.WriteFile(out, raw); err != nil {
			return err
		}
		fmt.Fprintf(stdout(cmd), "%s -> %s\n", id, out)
		return nil
	},
}

var archiveRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Remove archived files",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, s := range args {
			id, err := archive.ParseID(s)
			if err != nil {
				return err
			}
			if err := a.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "removed %s\n", id)
		}
		return nil
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.PersistentFlags().String("archive-dir", "", "Archive directory (default from config)")
	archiveListCmd.Flags().Bool("json", false, "Print records as JSON")

	archiveCmd.AddCommand(archivePutCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveExportCmd)
	archiveCmd.AddCommand(archiveRmCmd)
}
