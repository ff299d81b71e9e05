// Command graphstore is a thin development/inspection CLI over the
// graphstore library: start a store, insert/get/list records, run an
// algorithm, and watch events. It is a client of the library API in
// graphstore.go, the same way the teacher's cmd/bd is a thin driver over
// its own internal library packages.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	configPath string
	storeName  string
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	})
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
	boldStyle = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "graphstore",
	Short: "Inspect and drive an in-memory graph store",
	Long: `graphstore is a development sandbox for the graph store engine.

It starts a store in this process, applies the requested operation, and
prints the result. Nothing persists across invocations; it exists to
exercise the library API and to give a human something to look at while
poking at a store's indices, cache, and algorithms.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file layered over the defaults")
	rootCmd.PersistentFlags().StringVar(&storeName, "store", "cli", "store name to start/use")

	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(traverseCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(demoCmd)
}

func main() {
	// setupTelemetry reads --verbose, so it runs once flags are parsed.
	shutdown := func() {}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		shutdown = setupTelemetry()
	}
	defer func() { shutdown() }()
	defer recoverStoreFailure()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
