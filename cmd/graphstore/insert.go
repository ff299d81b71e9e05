package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/graphstore/internal/types"
)

var (
	insertKind    string
	insertID      string
	insertSubtype string
	insertData    string
	insertName    string
	insertType    string
	insertSource  string
	insertTarget  string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a graph, node, or edge",
	Example: `  graphstore insert --kind node --id n1 --data '{"name":"Alice"}'
  graphstore insert --kind edge --source n1 --target n2 --type knows`,
	RunE: runInsert,
}

func init() {
	insertCmd.Flags().StringVar(&insertKind, "kind", "node", "entity kind: graph|node|edge")
	insertCmd.Flags().StringVar(&insertID, "id", "", "explicit id (generated if empty)")
	insertCmd.Flags().StringVar(&insertSubtype, "subtype", "", "registered schema subtype name")
	insertCmd.Flags().StringVar(&insertData, "data", "{}", "JSON data payload")
	insertCmd.Flags().StringVar(&insertName, "name", "", "graph name (kind=graph only)")
	insertCmd.Flags().StringVar(&insertType, "type", "", "node/edge type tag")
	insertCmd.Flags().StringVar(&insertSource, "source", "", "edge source node id (kind=edge only)")
	insertCmd.Flags().StringVar(&insertTarget, "target", "", "edge target node id (kind=edge only)")
}

func runInsert(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(insertData), &data); err != nil {
		return fmt.Errorf("parsing --data: %w", err)
	}

	ctx := context.Background()
	var (
		kind   types.EntityKind
		record interface{}
	)
	switch insertKind {
	case "graph":
		kind = types.KindGraph
		record = types.Graph{ID: insertID, Name: insertName, Data: data}
	case "node":
		kind = types.KindNode
		record = types.Node{ID: insertID, Type: insertType, Data: data}
	case "edge":
		if insertSource == "" || insertTarget == "" {
			return fmt.Errorf("--source and --target are required for kind=edge")
		}
		kind = types.KindEdge
		record = types.Edge{ID: insertID, Source: insertSource, Target: insertTarget, Type: insertType, Data: data}
	default:
		return fmt.Errorf("unknown --kind %q (want graph|node|edge)", insertKind)
	}

	stored, err := store.Insert(ctx, kind, insertSubtype, record)
	if err != nil {
		return err
	}
	return printResult(cmd, stored)
}
