package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// printResult renders v as pretty JSON (--json) or a compact accented
// one-line summary, matching the teacher CLI's dual-mode output.
func printResult(cmd *cobra.Command, v interface{}) error {
	if jsonOutput {
		enc, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), accentStyle.Render(fmt.Sprintf("%+v", v)))
	return nil
}
