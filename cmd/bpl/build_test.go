package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/object"
	"github.com/stretchr/testify/require"
)

func TestBuildWritesCompiledFile(t *testing.T) {
	disableColor(t)
	srcPath := filepath.Join(t.TempDir(), "গণনা.bpl")
	require.Nil(t, os.WriteFile(srcPath, []byte("ক = ২১ * ২\n"), 0o644))

	output := captureStdout(t, func() {
		require.Nil(t, buildCmd.RunE(buildCmd, []string{srcPath}))
	})

	outPath := strings.TrimSuffix(srcPath, ".bpl") + ".bplc"
	require.Contains(t, output, outPath)

	data, err := os.ReadFile(outPath)
	require.Nil(t, err)

	code, err := bytecode.Unmarshal(data)
	require.Nil(t, err)
	require.True(t, code.InstructionCount() > 0)
	require.Equal(t, srcPath, code.Filename())

	result, err := bpl.NewProgram(code).Run(context.Background())
	require.Nil(t, err)
	require.Same(t, object.Nil, result)
}

func TestBuildPreservesFunctions(t *testing.T) {
	disableColor(t)
	srcPath := filepath.Join(t.TempDir(), "ফাংশন.bpl")
	source := "ফাংশন যোগ(ক, খ):\n    ফলাফল ক + খ\n"
	require.Nil(t, os.WriteFile(srcPath, []byte(source), 0o644))

	captureStdout(t, func() {
		require.Nil(t, buildCmd.RunE(buildCmd, []string{srcPath}))
	})

	data, err := os.ReadFile(strings.TrimSuffix(srcPath, ".bpl") + ".bplc")
	require.Nil(t, err)
	code, err := bytecode.Unmarshal(data)
	require.Nil(t, err)
	require.Equal(t, []string{"যোগ"}, code.FunctionNames())
}

func TestBuildSyntaxError(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "ভুল.bpl")
	require.Nil(t, os.WriteFile(srcPath, []byte("ক = \n"), 0o644))

	err := buildCmd.RunE(buildCmd, []string{srcPath})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "সিনট্যাক্স ত্রুটি")
}

func TestBuildMissingFile(t *testing.T) {
	err := buildCmd.RunE(buildCmd, []string{filepath.Join(t.TempDir(), "নেই.bpl")})
	require.NotNil(t, err)
}
