// modelcheck inspects glTF model files the way the viewer will see them:
// decoded bounds, derived normalization transform, animation clips and
// geometry counts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/vitrinelabs/vitrine/internal/model"
	vmath "github.com/vitrinelabs/vitrine/pkg/math"
)

type report struct {
	File        string     `json:"file"`
	Name        string     `json:"name,omitempty"`
	Min         [3]float32 `json:"min"`
	Max         [3]float32 `json:"max"`
	Center      [3]float32 `json:"center"`
	Size        [3]float32 `json:"size"`
	MaxDim      float32    `json:"maxDim"`
	Translation [3]float32 `json:"translation"`
	Scale       float32    `json:"scale"`
	Clips       []string   `json:"clips,omitempty"`
	Nodes       int        `json:"nodes"`
	Meshes      int        `json:"meshes"`
	Primitives  int        `json:"primitives"`
	Vertices    int        `json:"vertices"`
	Error       string     `json:"error,omitempty"`
}

func main() {
	target := flag.Float64("target", 1.0, "Normalization target size in meters")
	asJSON := flag.Bool("json", false, "Emit a JSON report instead of text")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	failed := false
	reports := make([]report, 0, flag.NArg())
	for _, path := range flag.Args() {
		rep := check(path, float32(*target))
		if rep.Error != "" {
			failed = true
		}
		reports = append(reports, rep)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		for _, rep := range reports {
			printReport(rep)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`modelcheck - glTF model inspector

Usage:
  modelcheck [-target N] [-json] <file.glb> [file.glb...]

Options:
  -target N   Normalization target size in meters (default 1.0)
  -json       Emit a JSON report instead of text

Examples:
  modelcheck armchair.glb
  modelcheck -target 0.5 -json models/*.glb`)
}

func check(path string, target float32) report {
	rep := report{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	m, err := model.Decode(data)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}

	norm := model.Normalize(m.Bounds, target)
	rep.Name = m.Name
	rep.Min = vecArr(m.Bounds.Min)
	rep.Max = vecArr(m.Bounds.Max)
	rep.Center = vecArr(m.Bounds.Center())
	rep.Size = vecArr(m.Bounds.Size())
	rep.MaxDim = m.Bounds.MaxDim()
	rep.Translation = vecArr(norm.Translation)
	rep.Scale = norm.Scale
	rep.Clips = m.Clips
	rep.Nodes = m.Nodes
	rep.Meshes = m.Meshes
	rep.Primitives = m.Primitives
	rep.Vertices = m.Vertices
	return rep
}

func vecArr(v vmath.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func printReport(rep report) {
	if rep.Error != "" {
		fmt.Fprintf(os.Stderr, "%s: %s\n", rep.File, rep.Error)
		return
	}

	fmt.Printf("File:       %s\n", rep.File)
	if rep.Name != "" {
		fmt.Printf("Scene:      %s\n", rep.Name)
	}
	fmt.Printf("Bounds:     min=%v max=%v\n", rep.Min, rep.Max)
	fmt.Printf("Center:     %v\n", rep.Center)
	fmt.Printf("Size:       %v (max %g)\n", rep.Size, rep.MaxDim)
	fmt.Printf("Normalize:  translate=%v scale=%g\n", rep.Translation, rep.Scale)
	if len(rep.Clips) > 0 {
		fmt.Printf("Clips:      %v\n", rep.Clips)
	}
	fmt.Printf("Geometry:   %d nodes, %d meshes, %d primitives, %d vertices\n",
		rep.Nodes, rep.Meshes, rep.Primitives, rep.Vertices)
	fmt.Println()
}
