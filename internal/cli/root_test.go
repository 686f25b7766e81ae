package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lego-store", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{{"serve"}, {"migrate"}, {"migrate", "up"}, {"migrate", "down"}, {"migrate", "version"}} {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue)

	levelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, levelFlag)
	assert.Equal(t, "info", levelFlag.DefValue)
}

func TestSubcommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serveCmd.Flags().Lookup("skip-migrations"))

	downCmd, _, err := cmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)

	stepsFlag := downCmd.Flags().Lookup("steps")
	require.NotNil(t, stepsFlag)
	assert.Equal(t, "1", stepsFlag.DefValue)
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "migrate", "version"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func TestMissingConfigFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", "testdata/does-not-exist.yaml", "--log-level", "error", "migrate", "version"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
}
