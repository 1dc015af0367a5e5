package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Rewrite an STL file in ASCII or binary encoding",
	Long: `Read an STL file, weld its vertices and write it back in the requested encoding.
Normals are written as zero vectors; binary attributes are preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "binary", "Target encoding: ascii or binary")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file")
	convertCmd.MarkFlagRequired("output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	write := stl.WriteBinary
	switch convertTo {
	case "binary":
	case "ascii":
		write = stl.WriteASCII
	default:
		return fmt.Errorf("unknown encoding %q (expected ascii or binary)", convertTo)
	}

	mesh, err := parseFile(args[0])
	if err != nil {
		return fmt.Errorf("parsing STL file: %w", err)
	}

	out, err := os.Create(convertOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(out, mesh); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", convertOutput, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", convertOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d triangles, %d vertices to %s (%s)\n",
		mesh.TriangleCount(), mesh.VertexCount(), convertOutput, convertTo)
	return nil
}
