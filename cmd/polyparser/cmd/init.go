/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with a generated API key",
	Long: `Init writes a configuration file with default limits and a freshly
generated API key for 'polyparser serve'.

Examples:
  polyparser init
  polyparser init --config ./polyparser.yaml --archive-dir ./archive`,
	Args: cobra.NoArgs,
	// The config file may not exist yet.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.GetDefaultConfigPath()
		}
		force, _ := cmd.Flags().GetBool("force")
		if config.ConfigExists(path) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		archiveDir, _ := cmd.Flags().GetString("archive-dir")
		c, err := config.BootstrapConfig(path, archiveDir)
		if err != nil {
			return err
		}

		out := stdout(cmd)
		fmt.Fprintf(out, "Wrote %s\n", path)
		fmt.Fprintf(out, "API key: %s\n", c.Server.APIKey)
		fmt.Fprintf(out, "Archive: %s\n", c.Archive.Dir)
		fmt.Fprintf(out, "\nStart the server with:\n  polyparser serve --config %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("archive-dir", "", "Archive directory to record in the config")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
