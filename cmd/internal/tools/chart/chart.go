package chart

import (
	"fmt"
	"os"
	"sort"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var MessageError bool
var CodewordError bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	// loop through all the results files and collect data needed for displaying

	stats := make([]*tools.SimulationStats, len(args))
	var err error
	ratios := make(map[float64]bool)
	for i, resultFile := range args {
		stats[i], err = tools.LoadResults(resultFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if stats[i] == nil {
			fmt.Printf("%v does not exist\n", resultFile)
			return
		}
		for db := range stats[i].Stats {
			ratios[db] = true
		}
	}

	//now make the x axis values

	xvalues, xnames := xAxisAndValues(ratios)

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	line := charts.NewLine()
	// set some global options like Title/Legend/ToolTip or anything else
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: "Error Rates",
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right: "0",
			Top:   "top",
			Type:  "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "SNR (dB)",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      metricName(),
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	line.SetXAxis(xnames)

	for i, s := range stats {
		line.AddSeries(args[i], series(s, xvalues))
	}

	err = line.Render(f)
	if err != nil {
		fmt.Println(err)
	}
}

func xAxisAndValues(ratios map[float64]bool) ([]float64, []string) {
	nums := make([]float64, 0, len(ratios))
	strs := make([]string, 0, len(ratios))
	for k := range ratios {
		nums = append(nums, k)
	}

	sort.Float64s(nums)

	for _, n := range nums {
		strs = append(strs, fmt.Sprint(n))
	}

	return nums, strs
}

func metricName() string {
	switch {
	case MessageError:
		return "Message Bit Error"
	case CodewordError:
		return "Codeword Bit Error"
	default:
		return "Frame Error"
	}
}

func series(stat *tools.SimulationStats, values []float64) []opts.LineData {
	results := make([]opts.LineData, len(values))
	null := opts.LineData{Value: nil}
	for i, v := range values {

		x, has := stat.Stats[v]
		if !has {
			results[i] = null
			continue
		}

		results[i] = opts.LineData{
			Value: tools.Metric(x, MessageError, CodewordError),
		}
	}
	return results
}
