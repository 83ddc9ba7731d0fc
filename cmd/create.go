package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/create"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a code table",
	Long:    `create provides the ability to save a code table from the list of built-in tables so it can be used later by the tools.`,
}

// createTableCmd represents the table command
var createTableCmd = &cobra.Command{
	Use:     "table NAME OUTPUT_TABLE_JSON",
	Aliases: []string{"t"},
	Short:   "Saves a built-in code table",
	Long:    `Saves a built-in code table as JSON. Use --list to see the names of the built-in tables.`,
	Args:    cobra.RangeArgs(0, 2),
	Run:     create.TableRun,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.AddCommand(createTableCmd)
	createTableCmd.Flags().BoolVarP(&create.List, "list", "l", false, "list the built-in tables")
}
