package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/graphstore/internal/types"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a small graph and run every algorithm against it",
	Long: `demo builds the weighted graph used in the library's own shortest-
path fixtures (a->b, a->c, b->c, c->d, b->d) and runs BFS, Dijkstra,
PageRank, connected components, and MST against it, printing each
result. It exists to give a human something to look at; it asserts
nothing the way the _test.go files do.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := store.Insert(ctx, types.KindNode, "", types.Node{ID: id}); err != nil {
			return err
		}
	}
	edges := []types.Edge{
		{ID: "e1", Source: "a", Target: "b", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "e2", Source: "a", Target: "c", Data: map[string]interface{}{"weight": 5.0}},
		{ID: "e3", Source: "b", Target: "c", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "e4", Source: "c", Target: "d", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "e5", Source: "b", Target: "d", Data: map[string]interface{}{"weight": 10.0}},
	}
	for _, e := range edges {
		if _, err := store.Insert(ctx, types.KindEdge, "", e); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, boldStyle.Render("bfs (a, depth 2, outgoing):"))
	bfsResult, err := store.Traverse(ctx, "bfs", map[string]interface{}{"start": "a", "max_depth": 2})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("  %+v", bfsResult)))

	fmt.Fprintln(out, boldStyle.Render("shortest_path (a -> d):"))
	pathResult, err := store.Traverse(ctx, "shortest_path", map[string]interface{}{"source": "a", "target": "d"})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("  %+v", pathResult)))

	fmt.Fprintln(out, boldStyle.Render("pagerank:"))
	prResult, err := store.Traverse(ctx, "pagerank", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("  %+v", prResult)))

	fmt.Fprintln(out, boldStyle.Render("connected_components:"))
	ccResult, err := store.Traverse(ctx, "connected_components", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("  %+v", ccResult)))

	fmt.Fprintln(out, boldStyle.Render("minimum_spanning_tree:"))
	mstResult, err := store.Traverse(ctx, "minimum_spanning_tree", nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("  %+v", mstResult)))

	return nil
}
