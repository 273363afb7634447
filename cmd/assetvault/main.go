package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetvault/assetvault/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "assetvault",
	Short:   "Multi-tenant static asset server",
	Long: `Assetvault serves isolated per-client asset directories over HTTP
and exposes an authenticated JSON index of each client's files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFiles(cmd), cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("assets-root", "", "assets root directory (default: ./assets, env: ASSETVAULT_ASSETS_ROOT)")
	rootCmd.PersistentFlags().String("env", "", "environment: dev, prod (env: ASSETVAULT_ENV)")
}

func configFiles(cmd *cobra.Command) []string {
	if f, _ := cmd.Flags().GetString("config"); f != "" {
		return []string{f}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
