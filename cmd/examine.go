package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/examine"

	"github.com/spf13/cobra"
)

// examineCmd represents the examine command
var examineCmd = &cobra.Command{
	Use:     "examine TABLE_JSON",
	Aliases: []string{"e"},
	Short:   "Audits a code table",
	Long:    `Audits a code table: column degrees, duplicate rows, link counts and optionally the girth of its Tanner graph.`,
	Args:    cobra.ExactArgs(1),
	Run:     examine.ExamineRun,
}

func init() {
	rootCmd.AddCommand(examineCmd)

	examineCmd.Flags().BoolVarP(&examine.Girth, "girth", "g", false, "calculate the girth of the Tanner graph")
	examineCmd.Flags().IntVarP(&examine.Limit, "limit", "l", -1, "the largest cycle to look for, even and >=4 (-1 means no limit)")
	examineCmd.Flags().UintVarP(&examine.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
}
