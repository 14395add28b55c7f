//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	SecretKey  string
	XMoneyPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		SecretKey:  os.Getenv("XMONEY_SECRET_KEY"),
		XMoneyPath: getXMoneyPath(),
		Verbose:    os.Getenv("XMONEY_VERBOSE") == "true",
	}
}

// getXMoneyPath determines the path to the xmoney binary.
func getXMoneyPath() string {
	if path := os.Getenv("XMONEY_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../xmoney",
		"./xmoney",
		"../xmoney",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "xmoney" // Fallback to PATH
}

// SkipIfMissingBinary skips the test when the CLI has not been built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.XMoneyPath); err != nil {
		t.Skipf("xmoney binary not found at %s, skipping integration test", config.XMoneyPath)
	}
}

// SkipIfMissingConfig skips tests that talk to the stage API when no test
// secret key is available. Live keys are refused.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.SecretKey == "" {
		t.Skip("XMONEY_SECRET_KEY not set, skipping integration test")
	}

	if !strings.HasPrefix(config.SecretKey, "sk_test_") {
		t.Skip("XMONEY_SECRET_KEY is not a test key, skipping integration test")
	}

	config.SkipIfMissingBinary(t)
}

// CommandRunner provides utilities for running xmoney commands.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an xmoney command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes an xmoney command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	// #nosec G204 -- test binary path and arguments are controlled by the test
	cmd := exec.Command(runner.config.XMoneyPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(), "HOME="+runner.t.TempDir(), "XMONEY_NO_COLOR=true")

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.XMoneyPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON runs a command with JSON output and decodes it into target.
func (runner *CommandRunner) RunJSON(target interface{}, args ...string) {
	runner.t.Helper()

	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	require.NoError(runner.t, err, "command %v failed: %s", args, stderr)
	require.NoError(runner.t, json.Unmarshal([]byte(stdout), target), "output is not JSON: %s", stdout)
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupCustomer attempts to delete a test customer.
func (runner *CommandRunner) CleanupCustomer(id int64) {
	stdout, stderr, err := runner.Run("customers", "delete", fmt.Sprint(id), "--force")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for customer %d: %s\nStderr: %s", id, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	require.True(t, json.Valid([]byte(strings.TrimSpace(output))), "Output is not JSON: %s", output)
}

// AssertYAMLOutput verifies command output is valid YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var decoded interface{}
	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded), "Output is not YAML: %s", output)
}
