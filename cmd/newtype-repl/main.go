// Package main provides the interactive newtype REPL.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/newtype-lang/newtype/internal/compile"
)

var version = "0.1.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		target      = flag.String("target", "", "TypeScript target version")
		evalStr     = flag.String("eval", "", "evaluate one expression and exit")
		historyFile = flag.String("history", defaultHistoryPath(), "history file path")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "newtype interactive REPL.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nREPL COMMANDS:\n")
		fmt.Fprintf(os.Stderr, "  :sexpr <expr>   Show the simplified tree as an s-expression\n")
		fmt.Fprintf(os.Stderr, "  :help           Show help\n")
		fmt.Fprintf(os.Stderr, "  :quit           Exit\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("newtype-repl v%s\n", version)
		return
	}

	opts := compile.Options{Target: *target}

	if *evalStr != "" {
		if err := evalLine(*evalStr, opts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runREPL(opts, *historyFile)
}

func runREPL(opts compile.Options, historyFile string) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyFile)

	fmt.Printf("newtype v%s. Type an expression, or :help.\n", version)

	for {
		input, err := line.Prompt("nt> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == ":quit" || input == ":q" || input == ":exit":
			return
		case input == ":help" || input == ":h":
			fmt.Println(":sexpr <expr> to dump the simplified tree, :quit to exit.")
			continue
		case strings.HasPrefix(input, ":sexpr "):
			evalSexpr(strings.TrimPrefix(input, ":sexpr "), opts)
			continue
		case strings.HasPrefix(input, ":"):
			fmt.Printf("unknown command %q\n", input)
			continue
		}

		if err := evalLine(input, opts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func evalLine(input string, opts compile.Options) error {
	out, _, err := compile.CompileExpr(input, opts)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func evalSexpr(input string, opts compile.Options) {
	_, simplified, err := compile.CompileExpr(input, opts)
	if simplified == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Println(simplified.Value.Sexpr())
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newtype_history"
	}
	return filepath.Join(home, ".newtype_history")
}
