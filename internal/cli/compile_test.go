package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaDir = "testdata/schema"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompileValidSchema(t *testing.T) {
	out, _, err := runCLI(t, "compile", schemaDir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Compiled 1 message, 1 enum")
	assert.Contains(t, out, "Plan: 2 values")
	assert.Contains(t, out, "Account → account: 4 fields, key id")
}

func TestCompileValidSchemaJSON(t *testing.T) {
	out, _, err := runCLI(t, "--format", "json", "compile", schemaDir)
	require.NoError(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   CompilationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Messages, 1)
	msg := resp.Data.Messages[0]
	assert.Equal(t, "Account", msg.Name)
	assert.Equal(t, "account", msg.Table)
	assert.NotEmpty(t, msg.Fingerprint)
	require.Len(t, msg.Fields, 4)
	assert.Equal(t, "plan", msg.Fields[3].Name)
	assert.Equal(t, "Plan", msg.Fields[3].EnumName)
}

func TestCompileOutputToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "descriptors.json")

	out, _, err := runCLI(t, "compile", schemaDir, "--output", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote descriptors to "+outputFile)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Enums, 1)
	assert.Equal(t, "Plan", result.Enums[0].Name)
	require.Len(t, result.Messages, 1)
}

func TestCompileFingerprintIsStable(t *testing.T) {
	first, _, err := runCLI(t, "--format", "json", "compile", schemaDir)
	require.NoError(t, err)
	second, _, err := runCLI(t, "--format", "json", "compile", schemaDir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileNonExistentDirectory(t *testing.T) {
	out, _, err := runCLI(t, "compile", "/nonexistent/directory/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "not found")
}

func TestCompileEmptyDirectory(t *testing.T) {
	out, _, err := runCLI(t, "compile", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E003")
	assert.Contains(t, out, "no CUE files found")
}

func TestCompileInvalidSchema(t *testing.T) {
	out, _, err := runCLI(t, "compile", "testdata/broken")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeInvalidType)
	assert.Contains(t, out, `unknown type "decimal"`)
}

func TestCompileInvalidSchemaJSON(t *testing.T) {
	out, _, err := runCLI(t, "--format", "json", "compile", "testdata/broken")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidType, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "message.Account.fields.price.type")
}

func TestMapFieldToErrorCode(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"cue", ErrCodeBuildFailed},
		{"message", ErrCodeNoMessages},
		{"message.Account.fields", ErrCodeNoFields},
		{"message.Account.fields.price.type", ErrCodeInvalidType},
		{"message.Account.fields.tags.key", ErrCodeInvalidType},
		{"message.Account.fields.id.number", ErrCodeFieldNumber},
		{"message.Account.fields.plan.enum", ErrCodeUnknownEnum},
		{"message.Account.fields.name.primary_key", ErrCodePrimaryKey},
		{"message.Account.fields.tags.repeated", ErrCodeRepeated},
		{"message.Account", ErrCodeSchemaInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, MapFieldToErrorCode(tt.field))
		})
	}
}
