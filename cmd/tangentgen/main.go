// tangentgen is a CLI utility that generates and checks per-vertex tangents
// for OBJ and glTF meshes without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/tanview/internal/logger"
	"github.com/Faultbox/tanview/pkg/formats"
	"github.com/Faultbox/tanview/pkg/tangent"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "gen", "generate":
		err = cmdGen(args, os.Stdout)
	case "check":
		err = cmdCheck(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tangentgen - per-vertex tangent generator

Usage:
  tangentgen <command> [options] <mesh>

Commands:
  gen   [-mode m] [-degenerate d] [-o file] <mesh>   Write tangents and stats as YAML
  check [-mode m] [-degenerate d] <mesh>             Report tangent quality, exit 1 on problems

Modes:       overwrite (default), accumulate
Degenerate:  propagate (default), skip, reject

Examples:
  tangentgen gen -o crate.tangents.yaml crate.obj
  tangentgen gen -mode accumulate suzanne.glb
  tangentgen check -degenerate reject suzanne.glb`)
}

// options registers the flags shared by every command.
type options struct {
	mode       *string
	degenerate *string
	verbose    *bool
}

func newFlagSet(name string) (*flag.FlagSet, options) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs, options{
		mode:       fs.String("mode", "overwrite", "how triangles sharing a vertex combine: overwrite or accumulate"),
		degenerate: fs.String("degenerate", "propagate", "zero UV determinant policy: propagate, skip or reject"),
		verbose:    fs.Bool("v", false, "log debug output to stderr"),
	}
}

// load parses flags, loads the single mesh argument and generates its
// tangents. Flags must precede the mesh path.
func load(fs *flag.FlagSet, o options, args []string) (*Document, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected one mesh file, got %d arguments", fs.NArg())
	}
	if *o.verbose {
		if err := logger.Init("debug", ""); err != nil {
			return nil, err
		}
	}

	opts, err := tangent.ParseOptions(*o.mode, *o.degenerate)
	if err != nil {
		return nil, err
	}
	path := fs.Arg(0)
	meshes, err := formats.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	logger.Sugar.Debugf("loaded %d meshes from %s", len(meshes), path)
	return generate(path, meshes, opts, fs.Name() == "gen")
}

func cmdGen(args []string, stdout io.Writer) error {
	fs, o := newFlagSet("gen")
	out := fs.String("o", "", "output file (default stdout)")

	doc, err := load(fs, o, args)
	if err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return doc.write(w)
}

func cmdCheck(args []string, stdout io.Writer) error {
	fs, o := newFlagSet("check")
	doc, err := load(fs, o, args)
	if err != nil {
		return err
	}

	if err := doc.write(stdout); err != nil {
		return err
	}
	if !doc.OK() {
		return fmt.Errorf("tangent check failed for %s", doc.Source)
	}
	return nil
}
