package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	version := getVersion()
	assert.Contains(t, version, "dev")
	assert.Contains(t, version, "unknown")
}

func TestInitLogging(t *testing.T) {
	// Test that initLogging doesn't panic
	require.NotPanics(t, func() {
		initLogging()
	})
}

func TestInitConfig(t *testing.T) {
	// Test that initConfig doesn't panic
	require.NotPanics(t, func() {
		initConfig()
	})
}

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	// Create a copy of the root command to avoid modifying the global one
	cmd := &cobra.Command{
		Use:   root.Use,
		Short: root.Short,
		Long:  root.Long,
		Run:   root.Run,
	}

	// Copy all subcommands
	for _, subCmd := range root.Commands() {
		cmd.AddCommand(subCmd)
	}

	// Copy flags
	cmd.Flags().AddFlagSet(root.Flags())
	cmd.PersistentFlags().AddFlagSet(root.PersistentFlags())

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "Termynus is an expression language")
	assert.Contains(t, output, "Available Commands:")
}

func TestGlobalFlags(t *testing.T) {
	// Test that global flags are properly defined
	flag := rootCmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, flag)
	assert.Equal(t, "string", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("log-level")
	assert.NotNil(t, flag)
	assert.Equal(t, "disabled", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("output")
	assert.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)

	flag = rootCmd.PersistentFlags().Lookup("quiet")
	assert.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "bool", flag.Value.Type())
}

func TestCommandAvailability(t *testing.T) {
	commands := []string{"eval", "parse", "render", "functions", "serve", "version"}

	for _, cmdName := range commands {
		cmd, _, err := rootCmd.Find([]string{cmdName})
		assert.NoError(t, err, "Command %s should be available", cmdName)
		assert.Equal(t, cmdName, cmd.Name(), "Command name should match")
	}
}

func TestCollectVariables(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "typed scalars",
			pairs: []string{"count=3", "rate=2.5", "active=true", "label=hello"},
			want: map[string]interface{}{
				"count":  3,
				"rate":   2.5,
				"active": true,
				"label":  "hello",
			},
		},
		{
			name:  "empty",
			pairs: nil,
			want:  map[string]interface{}{},
		},
		{
			name:    "missing equals",
			pairs:   []string{"novalue"},
			wantErr: true,
		},
		{
			name:    "empty key",
			pairs:   []string{"=5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectVariables("", tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
