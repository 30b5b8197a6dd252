// Command render lays out and renders a graph payload offline:
// payload JSON in, SVG scene out. Useful for debugging layouts and
// for generating report snapshots without the HTTP service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"netviz/domain/graph"
	"netviz/engine"
	"netviz/infrastructure/config"
)

func main() {
	input := flag.String("in", "", "graph payload JSON file (default stdin)")
	output := flag.String("out", "", "SVG output file (default stdout)")
	tuningFile := flag.String("tuning", "", "optional YAML tuning override file")
	selectID := flag.String("select", "", "render with this node selected")
	flag.Parse()

	if err := run(*input, *output, *tuningFile, *selectID); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, tuningFile, selectID string) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	var payload graph.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parsing payload: %w", err)
	}

	tuning, err := config.LoadTuning(tuningFile)
	if err != nil {
		return err
	}

	view := engine.NewView(tuning, zap.NewNop())
	if err := view.Load(&payload); err != nil {
		return err
	}

	if selectID != "" {
		if err := view.Select(graph.NodeID(selectID)); err != nil {
			return err
		}
	}

	doc, err := view.Scene()
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	return os.WriteFile(output, doc, 0644)
}

func readInput(input string) ([]byte, error) {
	if input == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}
