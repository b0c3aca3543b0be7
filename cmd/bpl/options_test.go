package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "প্রোগ্রাম.bpl")
	require.Nil(t, os.WriteFile(path, []byte("দেখাও(১)\n"), 0o644))

	code, filename, err := getCode(rootCmd, []string{path})
	require.Nil(t, err)
	require.Equal(t, "দেখাও(১)\n", code)
	require.Equal(t, path, filename)
}

func TestGetCodeFromEnv(t *testing.T) {
	t.Setenv("BPL_CODE", "১ + ২")

	code, filename, err := getCode(rootCmd, nil)
	require.Nil(t, err)
	require.Equal(t, "১ + ২", code)
	require.Equal(t, "<input>", filename)
}

func TestGetCodeConflict(t *testing.T) {
	t.Setenv("BPL_CODE", "১")

	_, _, err := getCode(rootCmd, []string{"প্রোগ্রাম.bpl"})
	require.NotNil(t, err)
	require.Equal(t, "multiple input sources specified", err.Error())
}

func TestGetCodeMissing(t *testing.T) {
	_, _, err := getCode(rootCmd, nil)
	require.NotNil(t, err)
	require.Equal(t, "no input provided", err.Error())
}

func TestGetCodeMissingFile(t *testing.T) {
	_, _, err := getCode(rootCmd, []string{filepath.Join(t.TempDir(), "নেই.bpl")})
	require.NotNil(t, err)
}

func TestShouldRunReplWithFile(t *testing.T) {
	require.False(t, shouldRunRepl(rootCmd, []string{"প্রোগ্রাম.bpl"}))
}

func TestShouldRunReplWithCode(t *testing.T) {
	t.Setenv("BPL_CODE", "১")
	require.False(t, shouldRunRepl(rootCmd, nil))
}

func TestShouldRunReplWithoutTerminal(t *testing.T) {
	// No input sources, but the test process has piped standard streams.
	require.False(t, shouldRunRepl(rootCmd, nil))
}
