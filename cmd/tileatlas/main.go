// Command tileatlas builds, inspects and unpacks tile texture atlases.
//
// Usage:
//
//	tileatlas build -manifest atlas.json -o atlas.tla [-compress] [-levels N]
//	tileatlas info atlas.tla
//	tileatlas dump -o pages atlas.tla
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/tileatlas"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// env is what a command sees after its flags are parsed.
type env struct {
	args   []string
	stdout io.Writer
	log    *slog.Logger
}

// command registers its flags on fs and returns the action to run once
// they are parsed.
type command struct {
	name    string
	summary string
	setup   func(fs *flag.FlagSet) func(e *env) error
}

var commands = []command{
	{"build", "build an atlas from a manifest of tile sheets", buildCommand},
	{"info", "print the contents of an atlas file", infoCommand},
	{"dump", "write every page and mip level of an atlas as PNG", dumpCommand},
}

// errUsage is returned by commands called with bad arguments.
var errUsage = errors.New("usage")

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	name := args[0]
	switch name {
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	}

	for _, c := range commands {
		if c.name != name {
			continue
		}
		fs := flag.NewFlagSet("tileatlas "+name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		verbose := fs.Bool("v", false, "log debug output")
		action := c.setup(fs)
		if err := fs.Parse(args[1:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			return 2
		}

		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		tileatlas.SetLogger(log)
		defer tileatlas.SetLogger(nil)

		err := action(&env{args: fs.Args(), stdout: stdout, log: log})
		switch {
		case err == nil:
			return 0
		case errors.Is(err, errUsage):
			fs.Usage()
			return 2
		default:
			fmt.Fprintf(stderr, "tileatlas %s: %v\n", name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "tileatlas: unknown command %q\n", name)
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tileatlas <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-6s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "tileatlas <command> -h" for the flags of a command.`)
}
