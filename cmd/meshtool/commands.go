package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/terrasculpt/internal/config"
	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
)

func cmdInfo(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: meshtool info <file.obj>")
	}

	m, report, err := mesh.LoadOBJFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File:      %s\n", args[0])
	printReport(stdout, report)
	printMesh(stdout, m)
	return nil
}

func cmdTerrain(args []string, stdout, stderr io.Writer) error {
	def := config.Default().Terrain

	fs := flag.NewFlagSet("terrain", flag.ContinueOnError)
	fs.SetOutput(stderr)
	size := fs.Float64("size", float64(def.Size), "World units per side")
	quads := fs.Int("quads", def.QuadsPerSide, "Quads per side")
	tileX := fs.Float64("tile-x", float64(def.TileX), "Texture repeats along X")
	tileY := fs.Float64("tile-y", float64(def.TileY), "Texture repeats along Z")
	minH := fs.Float64("min", float64(def.HeightMin), "Height at noise 0")
	maxH := fs.Float64("max", float64(def.HeightMax), "Height at noise 1")
	scale := fs.Float64("scale", float64(def.NoiseScale), "Noise period as a fraction of size")
	offX := fs.Float64("offset-x", 0, "Noise offset along X")
	offY := fs.Float64("offset-y", 0, "Noise offset along Z")
	out := fs.String("o", "terrain.obj", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := mesh.NewTerrain(mesh.TerrainParams{
		Size:         float32(*size),
		QuadsPerSide: *quads,
		TileX:        float32(*tileX),
		TileY:        float32(*tileY),
		HeightMin:    float32(*minH),
		HeightMax:    float32(*maxH),
		NoiseScale:   float32(*scale),
	})
	if err != nil {
		return err
	}
	if *offX != 0 || *offY != 0 {
		err = m.SetTerrainHeightPerlin(mesh.HeightParams{
			Min:     float32(*minH),
			Max:     float32(*maxH),
			Scale:   float32(*scale),
			OffsetX: float32(*offX),
			OffsetY: float32(*offY),
		})
		if err != nil {
			return err
		}
	}

	return save(stdout, m, *out)
}

func cmdPrimitive(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: meshtool primitive <%s> [-o out.obj]", strings.Join(mesh.PrimitiveNames(), "|"))
	}

	kind, err := mesh.ParsePrimitive(args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("primitive", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", kind.String()+".obj", "Output file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	m, err := mesh.NewPrimitive(kind)
	if err != nil {
		return err
	}
	return save(stdout, m, *out)
}

func cmdConvert(args []string, stdout io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: meshtool convert <in.obj> <out.obj>")
	}

	m, report, err := mesh.LoadOBJFile(args[0])
	if err != nil {
		return err
	}
	printReport(stdout, report)
	return save(stdout, m, args[1])
}

func save(stdout io.Writer, m *mesh.Mesh, path string) error {
	if err := m.SaveOBJFile(path); err != nil {
		return err
	}
	printMesh(stdout, m)
	fmt.Fprintf(stdout, "Wrote:     %s\n", path)
	return nil
}

func printReport(w io.Writer, r mesh.ImportReport) {
	fmt.Fprintf(w, "Attributes: %d positions, %d uvs, %d normals\n", r.Positions, r.UVs, r.Normals)
	skipped := r.SkippedLines()
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped:   %d lines\n", len(skipped))
	for _, err := range skipped {
		fmt.Fprintf(w, "  %v\n", err)
	}
}

func printMesh(w io.Writer, m *mesh.Mesh) {
	b := m.Bounds()
	fmt.Fprintf(w, "Vertices:  %d\n", m.VertexCount())
	fmt.Fprintf(w, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(w, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
}
