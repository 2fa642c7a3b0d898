// meshtool inspects polygon effects without a display: how an effect cuts
// a window up, how the damage box evolves over the animation, and what the
// configuration defaults are.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "effects", "ls":
		return cmdEffects(out)
	case "mesh":
		return cmdMesh(args, out)
	case "damage":
		return cmdDamage(args, out)
	case "preview":
		return cmdPreview(args, out)
	case "config":
		return cmdConfig(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	}
	printUsage(os.Stderr)
	return fmt.Errorf("unknown command: %s", command)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshtool - polygon effect inspector

Usage:
  meshtool <command> [options]

Commands:
  effects                       List registered effects
  mesh [options] <effect>       Show how the effect cuts up the window
  damage [options] <effect>     Print per-frame damage boxes
  preview [options] <effect>    Rasterize frames to PNG files
  config [-config f] [-o file]  Print or write the effective configuration

Common options:
  -config file    YAML config layered over the defaults
  -screen-w, -screen-h   Screen size (default 1280x1024)
  -event name     Window event: close, open, minimize, ... (default close)
  -seed n         Seed for effect randomness (default 1)

Examples:
  meshtool mesh -v shatter
  meshtool damage -frames 20 tornado
  meshtool preview -frames 8 -o frames glide2
  meshtool config -o ~/.config/polyfx/config.yaml`)
}
