package bfs_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gridsearch/bfs"
	"github.com/katalvlaran/gridsearch/grid"
)

// BenchmarkBFS_OpenGrid measures a full traversal of the largest open grid.
func BenchmarkBFS_OpenGrid(b *testing.B) {
	g, err := grid.New(grid.MaxRows, grid.MaxCols, grid.At(0, 0), grid.At(grid.MaxRows-1, grid.MaxCols-1))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, g.Start())
	}
}

// BenchmarkShortestLength_RandomMaze measures the oracle on a 30% obstacle maze.
func BenchmarkShortestLength_RandomMaze(b *testing.B) {
	g, err := grid.Random(60, 90, 0.3, rand.New(rand.NewSource(42)))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.ShortestLength(g, g.Start(), g.Goal())
	}
}
