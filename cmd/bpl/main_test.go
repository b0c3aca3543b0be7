package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, name string, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	disableColor(t)
	path := writeScript(t, "প্রোগ্রাম.bpl", "দেখাও(৪২)\n")

	output := captureStdout(t, func() {
		require.Nil(t, rootCmd.RunE(rootCmd, []string{path}))
	})
	require.Equal(t, "42\n", output)
}

func TestRunFileLastExpressionEchoed(t *testing.T) {
	disableColor(t)
	path := writeScript(t, "প্রোগ্রাম.bpl", "ক = ২০\nক * ২ + ২\n")

	output := captureStdout(t, func() {
		require.Nil(t, rootCmd.RunE(rootCmd, []string{path}))
	})
	require.Equal(t, "42\n", output)
}

func TestRunFileWithControlFlow(t *testing.T) {
	disableColor(t)
	source := "ক = ০\n" +
		"যখন ক < ৩:\n" +
		"    দেখাও(ক)\n" +
		"    ক = ক + ১\n"
	path := writeScript(t, "লুপ.bpl", source)

	output := captureStdout(t, func() {
		require.Nil(t, rootCmd.RunE(rootCmd, []string{path}))
	})
	require.Equal(t, "0\n1\n2\n", output)
}

func TestRunFileError(t *testing.T) {
	disableColor(t)
	path := writeScript(t, "ভুল.bpl", "১ / ০\n")

	err := rootCmd.RunE(rootCmd, []string{path})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "division by zero")
}

func TestRunMissingFile(t *testing.T) {
	err := rootCmd.RunE(rootCmd, []string{filepath.Join(t.TempDir(), "নেই.bpl")})
	require.NotNil(t, err)
}

func TestRunCompiledFile(t *testing.T) {
	disableColor(t)
	program, err := bpl.Compile(context.Background(), "দেখাও(৭ * ৬)\n")
	require.Nil(t, err)
	data, err := bytecode.Marshal(program.Code())
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "প্রোগ্রাম.bplc")
	require.Nil(t, os.WriteFile(path, data, 0o644))

	output := captureStdout(t, func() {
		require.Nil(t, rootCmd.RunE(rootCmd, []string{path}))
	})
	require.Equal(t, "42\n", output)
}

func TestRunCompiledFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "প্রোগ্রাম.bplc")
	require.Nil(t, os.WriteFile(path, []byte("not bytecode"), 0o644))

	err := rootCmd.RunE(rootCmd, []string{path})
	require.NotNil(t, err)
}
