package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "mortgage-agent/errors"
)

const prospects = "Customer,Total loan,Interest,Years\n" +
	"Juha,1000,5,2\n" +
	"Karvinen,4356,abc,6\n"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestProcessCommand_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prospects.txt"), []byte(prospects), 0o600))

	out, errOut, err := runCLI(t, "process", "--dir", dir)
	require.NoError(t, err)

	assert.Equal(t, "Prospect 1: Juha wants to borrow 1000.00 € for a period of 2 years and pay 43.87 € each month\n", out)
	assert.Equal(t,
		"Error processing line: Karvinen,4356,abc,6 - Expected a numeric value for interest rate on line 3, but found: 'abc'\n",
		errOut)
}

func TestProcessCommand_MissingFile(t *testing.T) {
	out, _, err := runCLI(t, "process", "invalid.txt", "--dir", t.TempDir(), "--log-level", "off")
	require.Error(t, err)

	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	assert.Empty(t, out)
}

func TestProcessCommand_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	require.NoError(t, mr.Set("prospects:march.txt", prospects))

	out, _, err := runCLI(t, "process", "march.txt", "--source", "redis", "--redis-addr", mr.Addr())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Prospect 1: Juha"), out)
}

func TestProcessCommand_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, _, err = runCLI(t, "process", "march.txt", "--source", "redis", "--redis-addr", addr)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
}

func TestProcessCommand_InvalidSource(t *testing.T) {
	_, _, err := runCLI(t, "process", "--source", "ftp")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}
