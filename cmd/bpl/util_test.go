package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/bpl-lang/bpl/object"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

// captureStdout runs fn while stdout is redirected to a pipe and returns
// what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.Nil(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func disableColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestGetOutputDefault(t *testing.T) {
	disableColor(t)

	_, ok, err := getOutput(object.Nil, "")
	require.Nil(t, err)
	require.False(t, ok)

	out, ok, err := getOutput(object.NewInt(42), "")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "42", out)

	out, ok, err = getOutput(object.NewString("হ্যালো"), "")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, `"হ্যালো"`, out)
}

func TestGetOutputText(t *testing.T) {
	disableColor(t)

	out, ok, err := getOutput(object.True, "text")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "সত্য", out)

	out, ok, err = getOutput(object.Nil, "text")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "নিল", out)

	out, ok, err = getOutput(object.NewString("ক"), "text")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "ক", out)
}

func TestGetOutputJSON(t *testing.T) {
	disableColor(t)

	out, ok, err := getOutput(object.NewInt(7), "json")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, "7", out)

	out, ok, err = getOutput(object.NewString("ক"), "json")
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, `"ক"`, out)
}

func TestGetOutputUnknownFormat(t *testing.T) {
	_, _, err := getOutput(object.Nil, "yaml")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestIsTerminalIO(t *testing.T) {
	// Test processes run with piped standard streams.
	require.False(t, isTerminalIO())
}
