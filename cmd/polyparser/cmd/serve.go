/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/api"
	"github.com/ssargent/polyparser/pkg/archive"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST conversion API",
	Long: `Start the PolyParser REST API. Layouts and slots posted to it are
converted in memory; the archive routes store uploads in the archive
directory. Metrics are served on /metrics and the API description on
/swagger/index.html.

Settings come from the config file (see 'polyparser init') and can be
overridden with flags.

Examples:
  polyparser serve
  polyparser serve --port 9400 --api-key=mysecretkey
  polyparser serve --no-archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		sc := cfg.Server
		if flags.Changed("port") {
			sc.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("bind") {
			sc.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("api-key") {
			sc.APIKey, _ = flags.GetString("api-key")
		}
		if sc.APIKey == "" || sc.APIKey == "auto" {
			return fmt.Errorf("no API key configured: run 'polyparser init' or pass --api-key")
		}

		var store api.Archiver
		if noArchive, _ := flags.GetBool("no-archive"); !noArchive {
			dir := cfg.Archive.Dir
			if flags.Changed("archive-dir") {
				dir, _ = flags.GetString("archive-dir")
			}
			a, err := archive.Open(dir)
			if err != nil {
				return err
			}
			defer a.Close()
			store = a
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, store, api.ServerConfig{
			Port:         sc.Port,
			Bind:         sc.Bind,
			APIKey:       sc.APIKey,
			CORSOrigins:  sc.CORSOrigins,
			MaxBodyBytes: sc.MaxBodyBytes,
			Session:      sessionOptions(),
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 9300, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key clients must send in X-API-Key")
	serveCmd.Flags().String("archive-dir", "", "Archive directory (default from config)")
	serveCmd.Flags().Bool("no-archive", false, "Disable the archive routes")
}
