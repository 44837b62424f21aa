package pbf

import (
	"github.com/natevvv/airway-routing/pkg/graph"
)

// Nav-data file names for the given prefix, e.g. "out/Cat" -> out/Cat_nav.txt.
// A compression suffix such as ".zst" or ".lz4" is appended to every file.
func NavDataFiles(prefix, compression string) graph.NavDataFiles {
	return graph.NavDataFiles{
		Points:   prefix + "_nav.txt" + compression,
		Segments: prefix + "_seg.txt" + compression,
		Airports: prefix + "_airports.txt" + compression,
	}
}

func ExportNavData(g *graph.Graph, prefix, compression string) (graph.NavDataFiles, error) {
	files := NavDataFiles(prefix, compression)
	return files, graph.WriteNavData(g, files)
}
