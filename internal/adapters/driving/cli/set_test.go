package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCmd_Use(t *testing.T) {
	assert.Equal(t, "set [service] [account]", setCmd.Use)
}

func TestSetCmd_ReadsSecretFromStdin(t *testing.T) {
	mock := &mockCredentialService{}
	cleanup := setupPipelineTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(bytes.NewBufferString("hunter2\n"))
	rootCmd.SetArgs([]string{"set", "registry.example.com", "alice"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "registry.example.com", mock.lastService)
	assert.Equal(t, "alice", mock.lastAccount)
	assert.Equal(t, "hunter2", mock.lastValue)
	assert.Contains(t, buf.String(), "Stored credential for registry.example.com/alice")
}

func TestSetCmd_TrimsOnlyTrailingNewlines(t *testing.T) {
	mock := &mockCredentialService{}
	cleanup := setupPipelineTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(bytes.NewBufferString("-----BEGIN KEY-----\nabc\n-----END KEY-----\r\n"))
	rootCmd.SetArgs([]string{"set", "svc", "acct"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "-----BEGIN KEY-----\nabc\n-----END KEY-----", mock.lastValue)
}

func TestSetCmd_EmptySecretIsStored(t *testing.T) {
	mock := &mockCredentialService{}
	cleanup := setupPipelineTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(bytes.NewBufferString("\n"))
	rootCmd.SetArgs([]string{"set", "svc", "acct"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "svc", mock.lastService)
	assert.Equal(t, "", mock.lastValue)
}

func TestSetCmd_ServiceError(t *testing.T) {
	mock := &mockCredentialService{setErr: errors.New("disk full")}
	cleanup := setupPipelineTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString("secret\n"))
	rootCmd.SetArgs([]string{"set", "svc", "acct"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
