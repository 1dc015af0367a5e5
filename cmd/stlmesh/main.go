package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/philipparndt/stlmesh/version"
	"github.com/spf13/cobra"
)

var (
	strictASCII bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "stlmesh",
	Short: "Read STL files into welded, indexed triangle meshes",
	Long: `stlmesh reads ASCII and binary STL (stereolithography) files and welds the
triangle soup into an indexed mesh: a list of distinct vertices plus triangles
referencing them by index. Vertices are merged only when their float32
coordinates are bit-for-bit identical.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&strictASCII, "strict", false, "Require a facet line after the solid line for ASCII input")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print warnings about dropped facets and vertices")
}

// parseFile parses an STL file with the options selected by the global flags
func parseFile(filename string) (*stl.Mesh, error) {
	opts := []stl.Option{
		stl.WithWarningHandler(func(w stl.Warning) {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", filename, w)
			}
		}),
	}
	if strictASCII {
		opts = append(opts, stl.WithStrictASCII())
	}
	return stl.Parse(filename, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
