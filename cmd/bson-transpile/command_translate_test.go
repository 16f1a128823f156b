package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTranslateCmd_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "query.js")
	output := filepath.Join(dir, "query.py")
	assert.NoError(t, os.WriteFile(input, []byte("{x: ObjectId()}\n"), 0o644))

	cmd := &TranslateCmd{Input: input, Output: output}
	ctx := &Context{Config: filepath.Join(dir, "absent.yaml"), Quiet: true}

	assert.NoError(t, cmd.Run(ctx))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "{'x': ObjectId()}\n", string(data))
}

func TestTranslateCmd_ExpressionArgument(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.py")

	cmd := &TranslateCmd{Expression: "Long(1, 2)", Output: output}
	ctx := &Context{Config: filepath.Join(dir, "absent.yaml"), Quiet: true}

	assert.NoError(t, cmd.Run(ctx))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "Int64(8589934593)\n", string(data))
}

func TestTranslateCmd_DiagnosticStillWritten(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.py")

	cmd := &TranslateCmd{Expression: "Timestamp(1)", Output: output}
	ctx := &Context{Config: filepath.Join(dir, "absent.yaml"), Quiet: true}

	assert.NoError(t, cmd.Run(ctx))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "Error: Timestamp requires two arguments\n", string(data))
}
