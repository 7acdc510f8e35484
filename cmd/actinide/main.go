// Command actinide runs lisp programs, or an interactive read-eval-print
// loop when no program is given.
//
// Environment variables supply defaults: ACTINIDE_PROMPT overrides the REPL
// prompt, and ACTINIDE_PRELOAD holds glob patterns (doublestar syntax,
// colon-separated) of library files loaded into the session before anything
// else runs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/xyproto/env/v2"

	"github.com/ojacobson/actinide"
	"github.com/ojacobson/actinide/api"
)

func main() {
	os.Exit(doMain(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	flags := flag.NewFlagSet("actinide", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var expr string
	var preload string
	flags.StringVar(&expr, "e", "", "Evaluate the given expression and exit.")
	flags.StringVar(&preload, "preload", env.Str("ACTINIDE_PRELOAD"),
		"Colon-separated glob patterns of files loaded before the program.")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	session := actinide.NewSession()

	if err := preloadFiles(session, preload); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if expr != "" {
		return runSource(session, expr, stdout, stderr)
	}

	if flags.NArg() > 0 {
		for _, path := range flags.Args() {
			source, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			if code := runSource(session, string(source), stdout, stderr); code != 0 {
				return code
			}
		}
		return 0
	}

	return repl(session, stdin, stdout, stderr)
}

// preloadFiles loads every file matched by the colon-separated glob
// patterns, in match order.
func preloadFiles(session *actinide.Session, patterns string) error {
	for _, pattern := range strings.Split(patterns, ":") {
		if pattern == "" {
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("preload pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := session.Run(string(source)); err != nil {
				return fmt.Errorf("preload %s: %w", path, err)
			}
		}
	}
	return nil
}

// runSource evaluates source, printing the resulting values one per line.
func runSource(session *actinide.Session, source string, stdout, stderr io.Writer) int {
	results, err := session.Run(source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	printValues(stdout, results)
	return 0
}

// repl evaluates one line at a time, reporting errors without exiting:
// bindings made before a failure persist.
func repl(session *actinide.Session, stdin io.Reader, stdout, stderr io.Writer) int {
	prompt := env.Str("ACTINIDE_PROMPT", ">>> ")
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return 0
		}
		results, err := session.Run(scanner.Text())
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		printValues(stdout, results)
	}
}

func printValues(w io.Writer, values []api.Value) {
	for _, value := range values {
		fmt.Fprintln(w, api.Display(value))
	}
}
