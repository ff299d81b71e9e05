package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/types"
)

var (
	allKind   string
	allSort   string
	allOffset int
	allLimit  int
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List non-deleted records of a kind",
	RunE:  runAll,
}

func init() {
	allCmd.Flags().StringVar(&allKind, "kind", "node", "entity kind: graph|node|edge")
	allCmd.Flags().StringVar(&allSort, "sort", "asc", "sort order by id: asc|desc")
	allCmd.Flags().IntVar(&allOffset, "offset", 0, "pagination offset")
	allCmd.Flags().IntVar(&allLimit, "limit", 0, "pagination limit (0 = unbounded)")
}

func runAll(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	kind, err := parseKind(allKind)
	if err != nil {
		return err
	}

	sortOrder := storage.SortAsc
	if allSort == "desc" {
		sortOrder = storage.SortDesc
	}

	records, err := store.All(context.Background(), kind, types.Filter{}, storage.ListOptions{
		Sort:   sortOrder,
		Offset: allOffset,
		Limit:  allLimit,
	})
	if err != nil {
		return err
	}
	return printResult(cmd, records)
}
