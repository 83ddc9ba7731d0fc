package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var MessageError bool
var CodewordError bool

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

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

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	//first write headers
	ratioList := make([]float64, 0, len(ratios))
	for db := range ratios {
		ratioList = append(ratioList, db)
	}
	sort.Float64s(ratioList)

	header := []string{"Results File"}

	for _, db := range ratioList {
		header = append(header, fmt.Sprintf("%v", db))
	}

	err = w.Write(header)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(args[i], filepath.Ext(args[i]))

		for i, db := range ratioList {
			v, has := s.Stats[db]
			if has {
				record[i+1] = fmt.Sprintf("%v", tools.Metric(v, MessageError, CodewordError))
			}
		}

		err = w.Write(record)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}
