package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn"
	"github.com/nathanhack/ldpc/cmd/internal/tools/chart"
	"github.com/nathanhack/ldpc/cmd/internal/tools/csv"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for LDPC codes",
	Long:    `Tools for LDPC codes`,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for LDPC codes`,
}

// toolsAwgnCmd represents the awgn command
var toolsAwgnCmd = &cobra.Command{
	Use:     "awgn TABLE_JSON RESULT_JSON",
	Aliases: []string{"a"},
	Short:   "An additive white gaussian noise channel simulator",
	Long: `An additive white gaussian noise channel simulator using BPSK and a soft decision decoder.
The decoder is read from --config (yaml) and the decoder flags override the file.
An existing RESULT_JSON is continued when it was made with the same table and decoder.`,
	Args: cobra.ExactArgs(2),
	Run:  awgn.AwgnRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"ch"},
	Short:   "Export to an html chart",
	Long:    `Export to an html line chart of the error rates against the signal to noise ratio`,
	Run:     chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)

	toolsChansimCmd.AddCommand(toolsAwgnCmd)
	toolsAwgnCmd.Flags().UintVarP(&awgn.Trials, "trials", "t", 100_000, "the number of trials per step")
	toolsAwgnCmd.Flags().Float64SliceVarP(&awgn.SNR, "snr", "s", []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}, "signal to noise ratios in dB to test")
	toolsAwgnCmd.Flags().BoolVarP(&awgn.EbN0, "ebn0", "e", false, "treat the --snr values as Eb/N0 in dB")
	toolsAwgnCmd.Flags().UintVar(&awgn.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsAwgnCmd.Flags().Uint64Var(&awgn.Seed, "seed", 0, "the seed of the first trial")
	toolsAwgnCmd.Flags().StringVarP(&awgn.ConfigFile, "config", "c", "", "yaml file describing the decoder")
	toolsAwgnCmd.Flags().StringVarP(&awgn.Algorithm, "algorithm", "a", "", "min-sum, self-corrected-min-sum, min-sum-c, log-domain-spa, lambda-min or sum-product")
	toolsAwgnCmd.Flags().StringVar(&awgn.Schedule, "schedule", "", "flooding or layered")
	toolsAwgnCmd.Flags().StringVar(&awgn.Element, "element", "", "float32, float64 or int8")
	toolsAwgnCmd.Flags().IntVar(&awgn.Lanes, "lanes", -1, "codewords decoded together (0 picks the widest the CPU handles well)")
	toolsAwgnCmd.Flags().IntVarP(&awgn.Iters, "iters", "i", 0, "max number of decoder iterations")
	toolsAwgnCmd.Flags().UintVarP(&awgn.BitFlip, "bitflip", "b", 0, "decode hard decisions with gallager bit flipping allowed this many flips instead of the soft decision decoder")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.MessageError, "message", "m", false, "outputs the MessageError instead of FrameError")
	toolsCSVCmd.Flags().BoolVarP(&csv.CodewordError, "codeword", "w", false, "outputs the CodewordError instead of FrameError")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&chart.MessageError, "message", "m", false, "charts the MessageError instead of FrameError")
	toolsChartCmd.Flags().BoolVarP(&chart.CodewordError, "codeword", "w", false, "charts the CodewordError instead of FrameError")
}
