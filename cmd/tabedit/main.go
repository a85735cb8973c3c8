// Command tabedit is a tabbed terminal text editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"example.com/tabedit/internal/app"
	"example.com/tabedit/pkg/config"
	"example.com/tabedit/pkg/logs"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses flags and starts the editor. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tabedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to config file (default ~/.tabedit/config.yaml)")
	root := fs.String("root", ".", "directory searched by the file finder")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: tabedit [flags] [file ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "tabedit %s\n", version)
		return 0
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "tabedit: %v\n", err)
		return 1
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(stderr, "tabedit: stdout is not a terminal")
		return 1
	}

	r, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "tabedit: %v\n", err)
		return 1
	}
	r.Root = *root
	r.Logger = logs.NewFromEnv()
	r.OpenFiles(fs.Args()...)
	if err := r.InitScreen(); err != nil {
		fmt.Fprintf(stderr, "tabedit: %v\n", err)
		return 1
	}
	defer r.Fini()
	if err := r.Run(); err != nil {
		fmt.Fprintf(stderr, "tabedit: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}
