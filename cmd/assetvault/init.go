package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/assetvault/assetvault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a config file",
	Long: `Create a config.yaml interactively.

You will be prompted for:
  - Listen port
  - Assets root directory
  - Client entries (name, id, secret)

Ids and secrets are pre-filled with generated random values; accept them
or type your own. Each client's assets live in <assets root>/<name>.`,
	RunE: runInit,
}

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "config.yaml", "output file path")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

// fileConfig mirrors the config file layout written by init.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Assets struct {
		Root string `yaml:"root"`
	} `yaml:"assets"`
	Clients []assetvault.ClientCredential `yaml:"clients"`
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(initOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
		}
	}

	var out fileConfig

	portPrompt := promptui.Prompt{
		Label:    "Listen port",
		Default:  "4000",
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return err
	}
	out.Server.Port, _ = strconv.Atoi(portStr)

	rootPrompt := promptui.Prompt{
		Label:   "Assets root directory",
		Default: "./assets",
	}
	if out.Assets.Root, err = rootPrompt.Run(); err != nil {
		return err
	}

	for {
		addPrompt := promptui.Select{
			Label: "Add a client",
			Items: []string{"yes", "no"},
		}
		_, answer, selErr := addPrompt.Run()
		if selErr != nil {
			return selErr
		}
		if answer != "yes" {
			break
		}

		cred, promptErr := promptClient()
		if promptErr != nil {
			return promptErr
		}
		out.Clients = append(out.Clients, cred)
	}

	if err := writeConfig(initOutput, &out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s with %d client(s).\n", initOutput, len(out.Clients))
	return nil
}

func writeConfig(path string, out *fileConfig) error {
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Secrets live in this file
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func promptClient() (assetvault.ClientCredential, error) {
	var cred assetvault.ClientCredential

	namePrompt := promptui.Prompt{
		Label: "Client name",
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("name cannot be empty")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return cred, err
	}

	idPrompt := promptui.Prompt{
		Label:   "Client id",
		Default: randomToken(8),
	}
	id, err := idPrompt.Run()
	if err != nil {
		return cred, err
	}

	secretPrompt := promptui.Prompt{
		Label:   "Client secret",
		Default: randomToken(24),
	}
	secret, err := secretPrompt.Run()
	if err != nil {
		return cred, err
	}

	return assetvault.ClientCredential{Name: name, ID: id, Secret: secret}, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

func randomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
