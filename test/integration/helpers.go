//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint    string
	Email          string
	Password       string
	StorefrontPath string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint:    os.Getenv("STOREFRONT_TEST_API"),
		Email:          os.Getenv("STOREFRONT_TEST_EMAIL"),
		Password:       os.Getenv("STOREFRONT_TEST_PASSWORD"),
		StorefrontPath: getStorefrontPath(),
		Verbose:        os.Getenv("STOREFRONT_TEST_VERBOSE") == "true",
	}
}

// getStorefrontPath determines the path to the storefront binary.
func getStorefrontPath() string {
	if path := os.Getenv("STOREFRONT_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../storefront",
		"./storefront",
		"../storefront",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "storefront"
}

// SkipIfMissingConfig skips the test if the backend or binary is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" {
		t.Skip("STOREFRONT_TEST_API not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.StorefrontPath); err != nil {
		t.Skipf("storefront binary not found at %s, skipping integration test", config.StorefrontPath)
	}
}

// SkipIfNoCredentials skips tests that need a login.
func (config *TestConfig) SkipIfNoCredentials(t *testing.T) {
	t.Helper()

	if config.Email == "" || config.Password == "" {
		t.Skip("STOREFRONT_TEST_EMAIL or STOREFRONT_TEST_PASSWORD not set, skipping")
	}
}

// CommandRunner runs storefront commands against a private config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a storefront command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a storefront command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.StorefrontPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.StorefrontPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// SetupAPI points the private config at the test backend.
func (runner *CommandRunner) SetupAPI() error {
	_, stderr, err := runner.Run("config", "set", "api", runner.config.APIEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set API endpoint: %s", stderr)
	}

	return nil
}

// Login authenticates with the test credentials.
func (runner *CommandRunner) Login() error {
	_, stderr, err := runner.Run("login", "--email", runner.config.Email, "--password", runner.config.Password)
	if err != nil {
		return fmt.Errorf("failed to log in: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput fails unless output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var decoded interface{}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
}
