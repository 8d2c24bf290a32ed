package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandStructure(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "erdc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Equal(t, Version, rootCmd.Version)
	assert.NotNil(t, rootCmd.RunE)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag, err := flags.GetString("config")
	assert.NoError(t, err)
	assert.Equal(t, "", configFlag)

	inputFlag, err := flags.GetString("input")
	assert.NoError(t, err)
	assert.Equal(t, "", inputFlag)

	outputFlag, err := flags.GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "", outputFlag)

	logLevelFlag, err := flags.GetString("log-level")
	assert.NoError(t, err)
	assert.Equal(t, "", logLevelFlag)

	logFormatFlag, err := flags.GetString("log-format")
	assert.NoError(t, err)
	assert.Equal(t, "", logFormatFlag)

	varcharFlag, err := flags.GetInt("default-varchar-length")
	assert.NoError(t, err)
	assert.Equal(t, 0, varcharFlag)
}

func TestRootCommandSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, len(commands))
	for i, c := range commands {
		commandNames[i] = c.Name()
	}

	expectedCommands := []string{"compile", "validate", "version"}
	for _, expected := range expectedCommands {
		assert.Contains(t, commandNames, expected, "Expected command %s not found", expected)
	}
}
