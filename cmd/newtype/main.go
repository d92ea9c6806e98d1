// Package main provides the entry point for the newtype compiler.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/newtype-lang/newtype/internal/compile"
	"github.com/newtype-lang/newtype/internal/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		configPath  = flag.String("config", "", "path to newtype.yaml (default: ./newtype.yaml)")
		target      = flag.String("target", "", "TypeScript target version (overrides config)")
		emitSexpr   = flag.Bool("emit-sexpr", false, "print the simplified tree as an s-expression instead of TypeScript")
		watch       = flag.Bool("watch", false, "recompile sources as they change")
		stdout      = flag.Bool("stdout", false, "print output instead of writing files")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [FILE...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compiles newtype (.nt) sources to TypeScript declarations.\n")
		fmt.Fprintf(os.Stderr, "With no FILE arguments, compiles every .nt file under the\n")
		fmt.Fprintf(os.Stderr, "configured src directory.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("newtype v%s (%s)\n", version, commit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *target != "" {
		cfg.Target = *target
		if err := cfg.Validate(); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	opts := compile.Options{Target: cfg.Target, EmitSexpr: *emitSexpr}

	if *watch {
		if err := runWatch(cfg, opts); err != nil {
			log.Fatalf("watch: %v", err)
		}
		return
	}

	if args := flag.Args(); len(args) > 0 {
		for _, path := range args {
			if err := compileOne(path, cfg, opts, *stdout); err != nil {
				log.Fatalf("%v", err)
			}
		}
		return
	}

	outputs, err := compile.CompileDir(cfg, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, out := range outputs {
		fmt.Println(out)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDir(".")
}

func compileOne(path string, cfg *config.Config, opts compile.Options, toStdout bool) error {
	if toStdout {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := compile.CompileSource(path, string(data), opts)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	outPath, err := compile.CompileFile(path, cfg, opts)
	if err != nil {
		return err
	}
	fmt.Println(outPath)
	return nil
}

func runWatch(cfg *config.Config, opts compile.Options) error {
	w, err := compile.NewWatcher(cfg, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		for result := range w.Results() {
			if result.Err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", result.Err)
				continue
			}
			fmt.Printf("%s -> %s\n", result.Source, result.Output)
		}
	}()

	fmt.Printf("watching %s (ctrl-c to stop)\n", cfg.Src)
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
