package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dumpOutput string
	dumpLimit  int
)

// meshDump is the serialized form of an indexed mesh
type meshDump struct {
	Format     string       `json:"format" yaml:"format"`
	Comment    string       `json:"comment,omitempty" yaml:"comment,omitempty"`
	Vertices   [][3]float32 `json:"vertices" yaml:"vertices,flow"`
	Triangles  [][3]uint32  `json:"triangles" yaml:"triangles,flow"`
	Attributes []uint16     `json:"attributes,omitempty" yaml:"attributes,omitempty,flow"`
}

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print the welded vertices and triangle indices",
	Long:  "Print the indexed mesh of an STL file as text, YAML or JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "text", "Output format: text, yaml or json")
	dumpCmd.Flags().IntVarP(&dumpLimit, "limit", "n", 0, "Maximum number of vertices and triangles to print (0 = all)")
}

func runDump(cmd *cobra.Command, args []string) error {
	mesh, err := parseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing STL file: %w", err)
	}
	return writeDump(cmd.OutOrStdout(), newMeshDump(mesh, dumpLimit), dumpOutput)
}

func newMeshDump(mesh *stl.Mesh, limit int) *meshDump {
	d := &meshDump{
		Format:     mesh.Format.String(),
		Comment:    mesh.Comment,
		Vertices:   make([][3]float32, len(mesh.Vertices)),
		Triangles:  mesh.Triangles,
		Attributes: mesh.Attributes,
	}
	for i, v := range mesh.Vertices {
		d.Vertices[i] = v
	}
	if limit > 0 {
		d.Vertices = d.Vertices[:min(limit, len(d.Vertices))]
		d.Triangles = d.Triangles[:min(limit, len(d.Triangles))]
		if d.Attributes != nil {
			d.Attributes = d.Attributes[:min(limit, len(d.Attributes))]
		}
	}
	return d
}

func writeDump(w io.Writer, d *meshDump, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)

	case "text":
		fmt.Fprintf(w, "Vertices (%d):\n", len(d.Vertices))
		for i, v := range d.Vertices {
			fmt.Fprintf(w, "  %6d %s\n", i, analysis.FormatVertex(v))
		}
		fmt.Fprintf(w, "\nTriangles (%d):\n", len(d.Triangles))
		for i, tri := range d.Triangles {
			if d.Attributes != nil {
				fmt.Fprintf(w, "  %6d [%d %d %d] attribute %d\n", i, tri[0], tri[1], tri[2], d.Attributes[i])
			} else {
				fmt.Fprintf(w, "  %6d [%d %d %d]\n", i, tri[0], tri[1], tri[2])
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (expected text, yaml or json)", output)
	}
}
