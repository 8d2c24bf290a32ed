package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const compileTestDiagram = `<?xml version="1.0" encoding="UTF-8"?>
<mxGraphModel>
  <root>
    <mxCell id="0" />
    <mxCell id="1" parent="0" />

    <mxCell id="t-author" value="author" style="shape=table" vertex="1" parent="1" />
    <mxCell id="author-row1" style="shape=tableRow" vertex="1" parent="t-author" />
    <mxCell id="author-m1" value="PK" vertex="1" parent="author-row1" />
    <mxCell id="author-n1" value="id" vertex="1" parent="author-row1" />
    <mxCell id="author-ty1" value="INT" vertex="1" parent="author-row1" />
  </root>
</mxGraphModel>`

func TestCompileCommandStructure(t *testing.T) {
	assert.NotNil(t, compileCmd)
	assert.Equal(t, "compile", compileCmd.Use)
	assert.NotEmpty(t, compileCmd.Short)
	assert.NotEmpty(t, compileCmd.Long)
	assert.NotNil(t, compileCmd.RunE)
}

func TestCompileIsAddedToRoot(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "compile" {
			found = true
			break
		}
	}
	assert.True(t, found, "compile command should be added to root command")
}

func TestLoadEffectiveConfigAppliesFlagsAndPaths(t *testing.T) {
	originalCfg, originalIn, originalOut := cfgFile, inputPath, outputPath
	originalLevel, originalFormat, originalLen := logLevel, logFormat, defaultVarcharLength
	defer func() {
		cfgFile, inputPath, outputPath = originalCfg, originalIn, originalOut
		logLevel, logFormat, defaultVarcharLength = originalLevel, originalFormat, originalLen
	}()

	cfgFile = ""
	inputPath = "diagram.drawio"
	outputPath = "schema.sql"
	logLevel = "debug"
	logFormat = "text"
	defaultVarcharLength = 128

	cfg, err := loadEffectiveConfig()
	assert.NoError(t, err)
	assert.Equal(t, "diagram.drawio", cfg.Input)
	assert.Equal(t, "schema.sql", cfg.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 128, cfg.Emit.DefaultVarcharLength)
}

func TestRunCompileRejectsMissingOutput(t *testing.T) {
	originalCfg, originalIn, originalOut := cfgFile, inputPath, outputPath
	defer func() { cfgFile, inputPath, outputPath = originalCfg, originalIn, originalOut }()

	cfgFile, inputPath, outputPath = "", "diagram.drawio", ""

	err := runCompile(compileCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "output path is required")
}

func TestRunCompileRejectsMissingInput(t *testing.T) {
	originalCfg, originalIn, originalOut := cfgFile, inputPath, outputPath
	defer func() { cfgFile, inputPath, outputPath = originalCfg, originalIn, originalOut }()

	cfgFile, inputPath, outputPath = "", "", "schema.sql"

	err := runCompile(compileCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "input path is required")
}

func TestRunCompileRejectsInvalidConfig(t *testing.T) {
	originalCfg, originalIn, originalOut, originalLevel := cfgFile, inputPath, outputPath, logLevel
	defer func() {
		cfgFile, inputPath, outputPath, logLevel = originalCfg, originalIn, originalOut, originalLevel
	}()

	cfgFile, inputPath, outputPath, logLevel = "", "diagram.drawio", "schema.sql", "verbose"

	err := runCompile(compileCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestRunCompileWritesDDL(t *testing.T) {
	dir := t.TempDir()
	diagramPath := filepath.Join(dir, "diagram.drawio")
	outputPath2 := filepath.Join(dir, "schema.sql")
	assert.NoError(t, os.WriteFile(diagramPath, []byte(compileTestDiagram), 0644))

	originalCfg, originalIn, originalOut := cfgFile, inputPath, outputPath
	defer func() { cfgFile, inputPath, outputPath = originalCfg, originalIn, originalOut }()

	cfgFile = ""
	inputPath = diagramPath
	outputPath = outputPath2

	err := runCompile(compileCmd, nil)
	assert.NoError(t, err)

	content, readErr := os.ReadFile(outputPath2)
	assert.NoError(t, readErr)
	assert.Contains(t, string(content), "CREATE TABLE author")
}
