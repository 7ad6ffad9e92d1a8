package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/storefront/cmd/storefront/commands"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// setupCLI points viper at a fresh config file for api and returns its path.
func setupCLI(t *testing.T, api string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	if api != "" {
		viper.Set("api", api)
	}

	return configFile
}

// runCommand executes cmd with args and input, returning its output.
func runCommand(t *testing.T, cmd *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// readConfigFile decodes the config file written by the CLI.
func readConfigFile(t *testing.T, path string) commands.Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config commands.Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}
