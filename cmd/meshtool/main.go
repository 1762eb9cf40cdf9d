// meshtool is a CLI utility for generating, inspecting and converting meshes.
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

	if err := run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, stdout, stderr io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, stdout)
	case "terrain":
		return cmdTerrain(args, stdout, stderr)
	case "primitive", "prim":
		return cmdPrimitive(args, stdout, stderr)
	case "convert":
		return cmdConvert(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshtool - terrain and mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.obj>                  Show mesh statistics and skipped lines
  terrain [flags]                  Generate a Perlin terrain and write it as OBJ
  primitive <kind> [-o out.obj]    Write a primitive (quad, plane, cube, sphere, capsule)
  convert <in.obj> <out.obj>       Import with vertex deduplication and re-export

Examples:
  meshtool info hills.obj
  meshtool terrain -size 40 -quads 80 -max 6 -o hills.obj
  meshtool primitive sphere -o ball.obj
  meshtool convert scan.obj scan_indexed.obj`)
}
