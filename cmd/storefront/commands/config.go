package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// Config is the CLI configuration stored in ~/.storefront/config.yml.
type Config struct {
	API            string     `json:"api,omitempty"              yaml:"api,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	Brand          string     `json:"brand,omitempty"            yaml:"brand,omitempty"`
	Output         string     `json:"output,omitempty"           yaml:"output,omitempty"`
	Retries        int        `json:"retries,omitempty"          yaml:"retries,omitempty"`
	Cache          string     `json:"cache,omitempty"            yaml:"cache,omitempty"`
	NATSURL        string     `json:"nats_url,omitempty"         yaml:"nats_url,omitempty"`
}

// settableKeys are the keys accepted by 'config set'.
var settableKeys = []string{"api", "brand", "output", "retries", "cache", "nats_url"}

func loadConfig() *Config {
	config := &Config{
		API:     viper.GetString("api"),
		Token:   viper.GetString("token"),
		Brand:   viper.GetString("brand"),
		Output:  viper.GetString("output"),
		Retries: viper.GetInt("retries"),
		Cache:   viper.GetString("cache"),
		NATSURL: viper.GetString("nats_url"),
	}

	expiresAt := viper.GetTime("token_expires_at")
	if !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return config
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".storefront")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set("api", config.API)
	viper.Set("token", config.Token)
	viper.Set("brand", config.Brand)
	viper.Set("retries", config.Retries)
	viper.Set("cache", config.Cache)
	viper.Set("nats_url", config.NATSURL)

	if config.TokenExpiresAt != nil {
		viper.Set("token_expires_at", *config.TokenExpiresAt)
	} else {
		viper.Set("token_expires_at", time.Time{})
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the storefront CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show configuration",
		Long:  "Display the current configuration with the session token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = Masked
			}

			return render(cmd, config, func(out io.Writer) error {
				table := newTable(out, "Property", "Value")
				_ = table.Append("API", orNone(config.API))
				_ = table.Append("Token", orNone(config.Token))
				_ = table.Append("Token Expires", formatTimePtr(config.TokenExpiresAt))
				_ = table.Append("Brand", orNone(config.Brand))
				_ = table.Append("Output", orNone(config.Output))
				_ = table.Append("Retries", strconv.Itoa(config.Retries))
				_ = table.Append("Cache", orNone(config.Cache))
				_ = table.Append("NATS URL", orNone(config.NATSURL))

				return renderTable(table)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: fmt.Sprintf(`Set a configuration value.

Available keys: %v`, settableKeys),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		err := validation.Validate(value, validation.Required, is.URL)
		if err != nil {
			return fmt.Errorf("invalid api %q: %w", value, err)
		}

		config.API = value
	case "brand":
		config.Brand = value
	case "output":
		err := validation.Validate(value, validation.In(
			constants.OutputFormatTable, constants.OutputFormatJSON, constants.OutputFormatYAML))
		if err != nil {
			return fmt.Errorf("%w %q: %w", constants.ErrInvalidOutput, value, err)
		}

		config.Output = value
		viper.Set("output", value)
	case "retries":
		retries, err := strconv.Atoi(value)
		if err == nil {
			err = validation.Validate(retries, validation.Min(0))
		}

		if err != nil {
			return fmt.Errorf("invalid retries %q: %w", value, err)
		}

		config.Retries = retries
	case "cache":
		err := validation.Validate(value, validation.In(
			string(storefront.CacheTypeNone), string(storefront.CacheTypeMemory), string(storefront.CacheTypeNATS)))
		if err != nil {
			return fmt.Errorf("invalid cache %q: %w", value, err)
		}

		config.Cache = value
	case "nats_url":
		config.NATSURL = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}
