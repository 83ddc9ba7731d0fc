package awgn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/nathanhack/ldpc/messagepassing/softdecision"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Trials     uint
	SNR        []float64
	EbN0       bool
	Threads    uint
	Seed       uint64
	ConfigFile string
	Algorithm  string
	Schedule   string
	Element    string
	Lanes      int
	Iters      int
	BitFlip    uint
)

var AwgnRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both TABLE_JSON RESULT_JSON")
		return
	}

	//first get the code to use
	code, err := ldpc.LoadTable(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	cfg, err := decoderConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.LoadResults(args[1])
	if err != nil {
		fmt.Println(err)
		return
	}

	//if data is nil then we create it
	if data == nil {
		data = &tools.SimulationStats{
			TypeInfo: typeInfo(cfg),
			ECCInfo:  tools.Md5Sum(code),
			Decoder:  cfg,
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}

	//in either case lets validate it
	if data.TypeInfo != typeInfo(cfg) {
		fmt.Printf("results loaded do not match the same type expected %v but found %v\n", typeInfo(cfg), data.TypeInfo)
		return
	}
	if data.ECCInfo != tools.Md5Sum(code) {
		fmt.Println("results loaded do not match the code table")
		return
	}
	if data.Decoder != cfg {
		fmt.Printf("results loaded do not match the decoder expected %+v but found %+v\n", cfg, data.Decoder)
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case sig := <-sigs:
			fmt.Println()
			fmt.Println(sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	err = runSimulation(ctx, data, code, cfg, args[1])
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println(err)
	}

	err = tools.SaveResults(args[1], data)
	if err != nil {
		fmt.Println(err)
	}
}

func decoderConfig() (softdecision.Config, error) {
	cfg := softdecision.DefaultConfig()
	if ConfigFile != "" {
		var err error
		cfg, err = softdecision.LoadConfig(ConfigFile)
		if err != nil {
			return cfg, err
		}
	}

	if Algorithm != "" {
		cfg.Algorithm = Algorithm
	}
	if Schedule != "" {
		cfg.Schedule = Schedule
	}
	if Element != "" {
		cfg.Element = Element
	}
	if Lanes >= 0 {
		cfg.Lanes = Lanes
	}
	if Iters > 0 {
		cfg.Trials = Iters
	}
	return cfg, cfg.Validate()
}

func typeInfo(cfg softdecision.Config) string {
	axis := "SNR"
	if EbN0 {
		axis = "EbN0"
	}
	if BitFlip > 0 {
		return fmt.Sprintf("AWGN:%v:gallager-bit-flipping", axis)
	}
	return fmt.Sprintf("AWGN:%v:%v/%v", axis, cfg.Algorithm, cfg.Schedule)
}

func sigma(code ldpc.Descriptor, db float64) float64 {
	if EbN0 {
		return benchmarking.EbN0ToSigma(db, float64(code.DataLen())/float64(code.CodeLen()))
	}
	return benchmarking.SNRToSigma(db)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, code ldpc.Descriptor, cfg softdecision.Config, outputFilename string) error {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trialsPerIter := numberOfThread * 10 * cfg.Width()
	logrus.Debugf("running %v trials for %v steps, %v trials at a time", Trials, len(SNR), trialsPerIter)

	bar := pb.StartNew(int(Trials) * len(SNR))
	defer bar.Finish()
	for t := trialsPerIter; t < int(Trials)+trialsPerIter; t += trialsPerIter {
		for _, db := range SNR {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[db] = stats

				if checkpointCount%numberOfThread == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}

			sim := benchmarking.AWGN{
				Code:    code,
				Decoder: cfg,
				Sigma:   sigma(code, db),
				Seed:    Seed,
				BitFlip: int(BitFlip),
			}
			if t == trialsPerIter {
				rate := float64(code.DataLen()) / float64(code.CodeLen())
				logrus.Debugf("%v dB: sigma %0.04f, Eb/N0 %0.02f dB", db, sim.Sigma, benchmarking.SigmaToEbN0(sim.Sigma, rate))
			}
			before := data.Stats[db].Trials()
			stats, err := benchmarking.BenchmarkAWGNContinueStats(ctx, min(t, int(Trials)), numberOfThread, sim, checkpoint, data.Stats[db], false)
			data.Stats[db] = stats
			bar.Add(stats.Trials() - before)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
