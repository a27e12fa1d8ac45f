package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arglab/toulmin/internal/graphio"
	"github.com/arglab/toulmin/internal/model"
)

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// loadGraph reads and validates a graph file
func loadGraph(path string) (*model.Graph, error) {
	g, err := graphio.Load(path, true)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %s: %d units, %d relations\n", path, len(g.Units), len(g.Relations))
	}
	return g, nil
}
