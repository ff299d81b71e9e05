package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	traverseAlgorithm string
	traverseParams    string
)

var traverseCmd = &cobra.Command{
	Use:   "traverse",
	Short: "Run a named graph algorithm",
	Example: `  graphstore traverse --algorithm bfs --params '{"start":"n1","max_depth":2}'
  graphstore traverse --algorithm shortest_path --params '{"source":"a","target":"d"}'
  graphstore traverse --algorithm pagerank
  graphstore traverse --algorithm connected_components
  graphstore traverse --algorithm minimum_spanning_tree`,
	RunE: runTraverse,
}

func init() {
	traverseCmd.Flags().StringVar(&traverseAlgorithm, "algorithm", "bfs", "bfs|shortest_path|pagerank|connected_components|minimum_spanning_tree")
	traverseCmd.Flags().StringVar(&traverseParams, "params", "{}", "JSON algorithm parameters")
}

func runTraverse(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(traverseParams), &params); err != nil {
		return fmt.Errorf("parsing --params: %w", err)
	}

	result, err := store.Traverse(context.Background(), traverseAlgorithm, params)
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}
