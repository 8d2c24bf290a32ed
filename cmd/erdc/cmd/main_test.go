package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "", cfgFile)
	assert.Equal(t, "", inputPath)
	assert.Equal(t, "", outputPath)
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, 0, defaultVarcharLength)
}

func TestCLIOverrideStruct(t *testing.T) {
	overrides := CLIOverrides{
		LogLevel:             "debug",
		LogFormat:            "json",
		DefaultVarcharLength: 255,
	}

	assert.Equal(t, "debug", overrides.LogLevel)
	assert.Equal(t, "json", overrides.LogFormat)
	assert.Equal(t, 255, overrides.DefaultVarcharLength)
}

func TestGetConfigFile(t *testing.T) {
	original := cfgFile
	defer func() { cfgFile = original }()

	cfgFile = "erdc.yaml"
	assert.Equal(t, "erdc.yaml", GetConfigFile())
}

func TestGetCLIOverrides(t *testing.T) {
	originalLevel, originalFormat, originalLen := logLevel, logFormat, defaultVarcharLength
	defer func() {
		logLevel, logFormat, defaultVarcharLength = originalLevel, originalFormat, originalLen
	}()

	logLevel = "warn"
	logFormat = "text"
	defaultVarcharLength = 128

	overrides := GetCLIOverrides()
	assert.Equal(t, "warn", overrides.LogLevel)
	assert.Equal(t, "text", overrides.LogFormat)
	assert.Equal(t, 128, overrides.DefaultVarcharLength)
}
