package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetvault/assetvault"
	"github.com/assetvault/assetvault/config"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List configured clients",
	Long: `List every client in the loaded registry with its id, asset
directory, and whether that directory currently exists on disk.

Secrets are hidden by default; use --show-secrets to reveal them.`,
	RunE: runClients,
}

var showSecrets bool

func init() {
	clientsCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "show secret values")
	rootCmd.AddCommand(clientsCmd)
}

func runClients(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	registry, err := assetvault.NewRegistry(cfg.Assets.Root, cfg.Clients)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}

	if registry.Len() == 0 {
		fmt.Println("No clients configured.")
		fmt.Println("Run 'assetvault init' to create a config file.")
		return nil
	}

	fmt.Printf("%-16s %-20s %-12s %s\n", "NAME", "ID", "SECRET", "ASSET DIR")
	for _, c := range registry.Clients() {
		secret := "********"
		if showSecrets {
			secret = c.Secret
		}

		dir := c.AssetDir
		if info, statErr := os.Stat(c.AssetDir); statErr != nil || !info.IsDir() {
			dir += " (missing)"
		}

		fmt.Printf("%-16s %-20s %-12s %s\n", c.Name, c.ID, secret, dir)
	}

	return nil
}
