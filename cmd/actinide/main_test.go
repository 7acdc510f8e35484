package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoMainEval(t *testing.T) {
	var stdout, stderr strings.Builder
	code := doMain(strings.NewReader(""), &stdout, &stderr, []string{"-e", "(+ 1 2 3)"})

	require.Equal(t, 0, code)
	require.Equal(t, "6\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestDoMainEvalError(t *testing.T) {
	var stdout, stderr strings.Builder
	code := doMain(strings.NewReader(""), &stdout, &stderr, []string{"-e", "(boom)"})

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "variable boom not bound")
}

func TestDoMainRunsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(define x 2) (* x 21)\n"), 0o600))

	var stdout, stderr strings.Builder
	code := doMain(strings.NewReader(""), &stdout, &stderr, []string{path})

	require.Equal(t, 0, code)
	require.Equal(t, "42\n", stdout.String())
}

func TestDoMainPreload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "lib.lisp"),
		[]byte("(define shared 7)\n"), 0o600))

	var stdout, stderr strings.Builder
	code := doMain(strings.NewReader(""), &stdout, &stderr,
		[]string{"-preload", filepath.Join(dir, "**", "*.lisp"), "-e", "shared"})

	require.Equal(t, 0, code)
	require.Equal(t, "7\n", stdout.String())
}

func TestDoMainRepl(t *testing.T) {
	var stdout, stderr strings.Builder
	stdin := strings.NewReader("(define x 1)\n(+ x 1)\n(oops)\nx\n")

	code := doMain(stdin, &stdout, &stderr, nil)

	require.Equal(t, 0, code)
	// Errors report without ending the loop, and bindings persist across
	// lines.
	require.Contains(t, stderr.String(), "variable oops not bound")
	require.Contains(t, stdout.String(), "2\n")
	require.Contains(t, stdout.String(), "1\n")
}
