package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/stlmesh/pkg/analysis"
	"github.com/philipparndt/stlmesh/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	infoWatch    bool
	infoDebounce time.Duration
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show the detected format, header comment, vertex and triangle counts after welding, bounding box and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoWatch, "watch", "w", false, "Print the information again whenever the file changes")
	infoCmd.Flags().DurationVar(&infoDebounce, "debounce", 500*time.Millisecond, "Delay before re-reading a changed file")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if err := printInfo(filename); err != nil {
		return err
	}
	if !infoWatch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(infoDebounce, func(changed string) {
		fmt.Printf("\nFile changed: %s\n\n", changed)
		if err := printInfo(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filename); err != nil {
		return err
	}
	fmt.Printf("\nWatching file for changes: %s\n", filename)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := fw.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func printInfo(filename string) error {
	start := time.Now()
	mesh, err := parseFile(filename)
	if err != nil {
		return fmt.Errorf("parsing STL file: %w", err)
	}
	elapsed := time.Since(start)

	result := analysis.AnalyzeMesh(mesh)

	fmt.Println("STL File Information")
	fmt.Println("====================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Format: %s\n", result.Format)
	if result.Comment != "" {
		fmt.Printf("Comment: %s\n", result.Comment)
	}
	fmt.Printf("Parsed in: %s\n\n", elapsed.Round(time.Microsecond))

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Vertices: %d (welded from %d, ratio %.2f)\n", result.VertexCount, result.VertexReferences, result.WeldRatio)
	fmt.Printf("  Degenerate triangles: %d\n", result.DegenerateTriangles)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if result.VertexCount == 0 {
		return nil
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Size: %s\n\n", analysis.FormatVector(result.Dimensions))

	fmt.Println("Edges:")
	fmt.Printf("  Unique: %d\n", result.EdgeCount)
	fmt.Printf("  Boundary: %d\n", result.BoundaryEdges)
	fmt.Printf("  Minimum length: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum length: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average length: %.6f units\n", result.AvgEdgeLength)
	return nil
}
