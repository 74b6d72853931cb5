package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/selftest"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the self-tests and the implementation each one resolves to",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	Alg    string `json:"alg"`
	Kind   string `json:"kind"`
	Type   string `json:"type,omitempty"`
	Driver string `json:"driver"`
	Async  bool   `json:"async,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	provider := crypto.NewProvider()

	var entries []listEntry
	for _, t := range selftest.DefaultTests() {
		entry := listEntry{Alg: t.Alg, Kind: t.Kind.String()}

		typ := t.Kind.AlgType()
		if typ == 0 {
			entry.Driver = "library"
		} else {
			entry.Type = typ.String()
			info, err := provider.Lookup(t.Alg, typ)
			if err != nil {
				entry.Driver = "unavailable: " + err.Error()
			} else {
				entry.Driver = info.DriverName
				entry.Async = info.Async
			}
		}
		entries = append(entries, entry)
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}

	printHeading("registered self-tests")
	for i, e := range entries {
		fmt.Printf("  %2d. %-22s %-15s %s\n", i+1, e.Alg, e.Kind, e.Driver)
	}
	return nil
}
