/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>...",
	Short: "Convert files as they are saved into a directory",
	Long: `Watch converts every .layout, .slot and layout tree written into the
given directories, using the same rules as convert. Failures are logged
and watching continues until interrupted.

Examples:
  polyparser watch ~/Layouts
  polyparser watch -t yaml --output-dir ./trees ~/Layouts`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		debounce := cfg.Watch.Debounce
		if flags.Changed("debounce") {
			debounce, _ = flags.GetDuration("debounce")
		}
		outDir := cfg.Watch.OutputDir
		if flags.Changed("output-dir") {
			outDir, _ = flags.GetString("output-dir")
		}

		w, err := watch.NewWithDebounce(debounce, args...)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := convertOptions()
		opts.Output = ""
		logger.Info("watching", "dirs", args, "output_dir", outDir, "debounce", debounce)
		return watch.NewConverter(outDir, opts).Run(ctx, w)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("output-dir", "", "Directory for converted files (default next to each input)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before a changed file is converted")
}
