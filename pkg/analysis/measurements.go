package analysis

import (
	"fmt"
	"math"
	"sort"

	dvec3 "github.com/flywave/go3d/float64/vec3"
	"github.com/flywave/go3d/vec3"
	"github.com/philipparndt/stlmesh/pkg/stl"
)

// EdgeInfo describes an undirected edge between two welded vertices
type EdgeInfo struct {
	A, B   uint32
	Length float64
	// Triangles is the number of triangles using the edge
	Triangles int
}

// MeasurementResult contains statistics of an indexed mesh
type MeasurementResult struct {
	Format        stl.Format
	Comment       string
	TriangleCount int
	VertexCount   int
	// VertexReferences is the number of vertices before welding
	VertexReferences int
	// WeldRatio is VertexReferences / VertexCount
	WeldRatio float64

	BoundingBox dvec3.Box
	Dimensions  dvec3.T
	SurfaceArea float64

	DegenerateTriangles int
	EdgeCount           int
	// BoundaryEdges are used by exactly one triangle
	BoundaryEdges int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Edges         []EdgeInfo
}

// AnalyzeMesh computes statistics of a welded mesh
func AnalyzeMesh(m *stl.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		Format:           m.Format,
		Comment:          m.Comment,
		TriangleCount:    m.TriangleCount(),
		VertexCount:      m.VertexCount(),
		VertexReferences: 3 * m.TriangleCount(),
		BoundingBox:      m.BoundingBox(),
	}
	if result.VertexCount > 0 {
		result.WeldRatio = float64(result.VertexReferences) / float64(result.VertexCount)
		result.Dimensions = dvec3.Sub(&result.BoundingBox.Max, &result.BoundingBox.Min)
	}

	edgeUse := make(map[[2]uint32]int, 3*len(m.Triangles)/2)
	for i, tri := range m.Triangles {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			result.DegenerateTriangles++
		}
		result.SurfaceArea += triangleArea(m.Triangle(i))

		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			edgeUse[[2]uint32{a, b}]++
		}
	}

	result.Edges = make([]EdgeInfo, 0, len(edgeUse))
	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for key, uses := range edgeUse {
		length := distance(m.Vertices[key[0]], m.Vertices[key[1]])
		result.Edges = append(result.Edges, EdgeInfo{A: key[0], B: key[1], Length: length, Triangles: uses})

		if uses == 1 {
			result.BoundaryEdges++
		}
		totalLength += length
		minLength = math.Min(minLength, length)
		maxLength = math.Max(maxLength, length)
	}
	// map order is random
	sort.Slice(result.Edges, func(i, j int) bool {
		ei, ej := result.Edges[i], result.Edges[j]
		if ei.A != ej.A {
			return ei.A < ej.A
		}
		return ei.B < ej.B
	})

	result.EdgeCount = len(result.Edges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

func toFloat64(v vec3.T) dvec3.T {
	return dvec3.T{float64(v[0]), float64(v[1]), float64(v[2])}
}

func distance(a, b vec3.T) float64 {
	da, db := toFloat64(a), toFloat64(b)
	d := dvec3.Sub(&db, &da)
	return d.Length()
}

func triangleArea(corners [3]vec3.T) float64 {
	a, b, c := toFloat64(corners[0]), toFloat64(corners[1]), toFloat64(corners[2])
	ab := dvec3.Sub(&b, &a)
	ac := dvec3.Sub(&c, &a)
	cross := dvec3.Cross(&ab, &ac)
	return cross.Length() / 2
}

// FormatVector formats a 3D vector
func FormatVector(v dvec3.T) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v[0], v[1], v[2])
}

// FormatVertex formats a welded vertex
func FormatVertex(v vec3.T) string {
	return FormatVector(toFloat64(v))
}
