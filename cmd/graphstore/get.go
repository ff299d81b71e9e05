package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/graphstore/internal/types"
)

var (
	getKind    string
	getSubtype string
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one record by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringVar(&getKind, "kind", "node", "entity kind: graph|node|edge")
	getCmd.Flags().StringVar(&getSubtype, "subtype", "", "expected registered schema subtype name")
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	kind, err := parseKind(getKind)
	if err != nil {
		return err
	}

	rec, err := store.Get(context.Background(), kind, getSubtype, args[0])
	if err != nil {
		return err
	}
	return printResult(cmd, rec)
}

func parseKind(s string) (types.EntityKind, error) {
	switch s {
	case "graph":
		return types.KindGraph, nil
	case "node":
		return types.KindNode, nil
	case "edge":
		return types.KindEdge, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want graph|node|edge)", s)
	}
}
