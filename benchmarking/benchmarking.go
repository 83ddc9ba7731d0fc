package benchmarking

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/ldpc/lane"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/nathanhack/ldpc/messagepassing/harddecision"
	"github.com/nathanhack/ldpc/messagepassing/softdecision"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	mat2 "gonum.org/v1/gonum/mat"
)

type Stats struct {
	ChannelError  avgstd.AvgStd // probability of a bit error caused by the channel
	CodewordError avgstd.AvgStd // probability of a bit error left after decoding
	MessageError  avgstd.AvgStd // probability of a data bit error left after decoding
	DecoderError  avgstd.AvgStd // probability of a bit the channel got right but the decoder got wrong
	FrameError    avgstd.AvgStd // probability of a codeword with any data bit error
	Iterations    avgstd.AvgStd // iterations spent per codeword
}

func (s Stats) String() string {
	return fmt.Sprintf("{Channel:%0.02f(+/-%0.02f), Codeword:%0.02f(+/-%0.02f), Message:%0.02f(+/-%0.02f), Frame:%0.02f(+/-%0.02f), Iterations:%0.02f}",
		s.ChannelError.Mean, math.Sqrt(s.ChannelError.SampledVariance()),
		s.CodewordError.Mean, math.Sqrt(s.CodewordError.SampledVariance()),
		s.MessageError.Mean, math.Sqrt(s.MessageError.SampledVariance()),
		s.FrameError.Mean, math.Sqrt(s.FrameError.SampledVariance()),
		s.Iterations.Mean,
	)
}

//Trials returns the number of codewords the stats were collected over.
func (s Stats) Trials() int {
	return s.FrameError.Count
}

type Checkpoints func(updatedStats Stats)

//AWGN describes a simulation of a BPSK modulated code over an additive white
// gaussian noise channel. Trial i draws its message and noise from Seed+i so
// a simulation can be resumed and repeated. A positive BitFlip replaces the
// soft decision decoder with Gallager bit flipping on the hard decisions,
// allowed that many flips.
type AWGN struct {
	Code    ldpc.Descriptor
	Decoder softdecision.Config
	Sigma   float64
	Seed    uint64
	BitFlip int
}

// worker holds what one goroutine needs to run a group of trials.
type worker struct {
	encoder  *ldpc.Encoder[float64]
	batch    softdecision.Batch
	gallager *harddecision.Gallager
}

type outcome struct {
	channelErrors, codewordErrors, messageErrors, decoderErrors int
	iterations                                                 int
}

func BenchmarkAWGN(ctx context.Context, trials, threads int, sim AWGN, checkpoints Checkpoints, showProgress bool) (Stats, error) {
	return BenchmarkAWGNContinueStats(ctx, trials, threads, sim, checkpoints, Stats{}, showProgress)
}

//BenchmarkAWGNContinueStats runs the trials previousStats does not cover yet.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func BenchmarkAWGNContinueStats(ctx context.Context,
	trials, threads int,
	sim AWGN,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) (Stats, error) {
	if sim.Sigma <= 0 {
		return previousStats, fmt.Errorf("sigma > 0 required but found %v", sim.Sigma)
	}
	if err := ctx.Err(); err != nil {
		return previousStats, err
	}
	first := previousStats.Trials()
	trialsToRun := trials - first
	if trialsToRun <= 0 {
		return previousStats, nil
	}

	// the first batch surfaces configuration errors before any work starts
	batch, err := sim.Decoder.NewBatch(sim.Code)
	if err != nil {
		return previousStats, err
	}
	lanes := batch.Lanes()
	workers := sync.Pool{
		New: func() interface{} {
			b, _ := sim.Decoder.NewBatch(sim.Code)
			return &worker{encoder: ldpc.NewEncoder[float64](sim.Code, lane.Scalar[float64]()), batch: b}
		},
	}
	workers.Put(&worker{encoder: ldpc.NewEncoder[float64](sim.Code, lane.Scalar[float64]()), batch: batch})

	logrus.Debugf("simulating %v trials at sigma %v with %v lanes of %v", trialsToRun, sim.Sigma, lanes, sim.Decoder.Element)

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	groups := (trialsToRun + lanes - 1) / lanes
	pool := threadpool.NewFixedSize(ctx, threads, groups)
	statsMux := sync.Mutex{}
	var trialErr error

	group := func(start, end int) {
		if ctx.Err() != nil {
			return
		}
		w := workers.Get().(*worker)
		defer workers.Put(w)

		outcomes, err := sim.run(w, start, end)

		statsMux.Lock()
		defer statsMux.Unlock()
		if err != nil {
			if trialErr == nil {
				trialErr = err
			}
			return
		}
		for _, o := range outcomes {
			sim.update(&previousStats, o)
			if showProgress {
				bar.Increment()
			}
		}
		if checkpoints != nil {
			checkpoints(previousStats) //give them the updated checkpoint
		}
	}

	for i := first; i < trials; i += lanes {
		start, end := i, i+lanes
		if end > trials {
			end = trials
		}
		pool.Add(func() { group(start, end) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}

	if trialErr != nil {
		return previousStats, trialErr
	}
	return previousStats, ctx.Err()
}

// run simulates trials [start,end) as one decoder call.
func (sim AWGN) run(w *worker, start, end int) ([]outcome, error) {
	n, k := sim.Code.CodeLen(), sim.Code.DataLen()
	originals := make([][]float64, 0, end-start)
	noisy := make([][]float64, 0, end-start)
	codewords := make([][]float64, 0, end-start)

	for i := start; i < end; i++ {
		src := rand.NewSource(sim.Seed + uint64(i))

		original := make([]float64, n)
		copy(original, BitsToBPSK(RandomMessage(src, k)).RawVector().Data)
		w.encoder.EncodeCodeword(original)

		llr := BPSKToLLR(RandomNoiseBPSK(src, mat2.NewVecDense(n, original), sim.Sigma), sim.Sigma)
		if err := ldpc.CheckFinite(llr); err != nil {
			return nil, fmt.Errorf("trial %v: %w", i, err)
		}

		originals = append(originals, original)
		noisy = append(noisy, llr)
		codewords = append(codewords, append([]float64(nil), llr...))
	}

	budget := sim.Decoder.Trials
	var results []int
	if sim.BitFlip > 0 {
		budget = sim.BitFlip
		results = w.bitFlip(sim.Code, codewords, budget)
	} else {
		results = w.batch.Decode(codewords, budget)
	}

	outcomes := make([]outcome, len(codewords))
	for c := range codewords {
		o := &outcomes[c]
		original := mat2.NewVecDense(n, originals[c])
		received := mat2.NewVecDense(n, noisy[c])
		decoded := mat2.NewVecDense(n, codewords[c])

		o.channelErrors = HammingDistanceBPSK(received, original)
		o.codewordErrors = HammingDistanceBPSK(decoded, original)
		o.messageErrors = HammingDistanceBPSK(decoded.SliceVec(0, k), original.SliceVec(0, k))
		for i := range codewords[c] {
			// wrong after decoding although the channel got it right
			if (codewords[c][i] < 0) != (originals[c][i] < 0) && (noisy[c][i] < 0) == (originals[c][i] < 0) {
				o.decoderErrors++
			}
		}
		o.iterations = budget
		if softdecision.Converged(results[c]) {
			o.iterations -= results[c]
		}
	}
	return outcomes, nil
}

// bitFlip repairs the signs of codewords in place.
func (w *worker) bitFlip(d ldpc.Descriptor, codewords [][]float64, maxIter int) []int {
	if w.gallager == nil {
		w.gallager = harddecision.NewGallager(d)
	}
	results := make([]int, len(codewords))
	for c, codeword := range codewords {
		var fixed mat.SparseVector
		fixed, results[c] = w.gallager.Decode(ldpc.HardDecision(codeword), maxIter)
		copy(codeword, BitsToBPSK(fixed).RawVector().Data)
	}
	return results
}

func (sim AWGN) update(s *Stats, o outcome) {
	n, k := float64(sim.Code.CodeLen()), float64(sim.Code.DataLen())
	s.ChannelError.Update(float64(o.channelErrors) / n)
	s.CodewordError.Update(float64(o.codewordErrors) / n)
	s.MessageError.Update(float64(o.messageErrors) / k)
	s.DecoderError.Update(float64(o.decoderErrors) / n)
	if o.messageErrors > 0 {
		s.FrameError.Update(1)
	} else {
		s.FrameError.Update(0)
	}
	s.Iterations.Update(float64(o.iterations))
}

//EbN0ToSigma returns the noise standard deviation for unit energy BPSK symbols
// given E_b/N_0 in dB and the code rate.
func EbN0ToSigma(ebn0 float64, rate float64) float64 {
	//using  σ^2 = N_0/2 and E_s=rate*E_b=1
	return math.Sqrt(1 / (2 * rate * math.Pow(10, ebn0/10)))
}

//SigmaToEbN0 is the inverse of EbN0ToSigma.
func SigmaToEbN0(sigma float64, rate float64) float64 {
	return 10 * math.Log10(1/(2*rate*sigma*sigma))
}

//BitsToBPSK converts a [0,1] vector to a [1,-1] vector, bit 0 is sent as +1.
func BitsToBPSK(a mat.SparseVector) *mat2.VecDense {
	output := mat2.NewVecDense(a.Len(), nil)

	for i := 0; i < a.Len(); i++ {
		if a.At(i) > 0 {
			output.SetVec(i, -1)
		} else {
			output.SetVec(i, 1)
		}
	}

	return output
}

//BPSKToLLR returns the log likelihood ratio log(p(+1|y)/p(-1|y)) = 2y/σ² of every
// received symbol.
func BPSKToLLR(received mat2.Vector, sigma float64) []float64 {
	llr := make([]float64, received.Len())
	scale := 2 / (sigma * sigma)
	for i := range llr {
		llr[i] = scale * received.AtVec(i)
	}
	return llr
}

//HammingDistanceBPSK calculates number of bits different.
// Assumes <0 is 1 and >=0 is 0
// If a and b are different sizes it assumes they are
// both aligned with the zero index (the difference is at the end)
func HammingDistanceBPSK(a, b mat2.Vector) int {
	min := a.Len()
	max := b.Len()
	if min > max {
		min = b.Len()
		max = a.Len()
	}

	count := 0
	for i := 0; i < min; i++ {
		aOne := a.AtVec(i) < 0
		bOne := b.AtVec(i) < 0
		if aOne != bOne {
			count++
		}
	}
	return max - min + count
}

//SNRToSigma returns the noise standard deviation for unit energy BPSK symbols
// given the signal to noise ratio in dB.
func SNRToSigma(snr float64) float64 {
	return math.Sqrt(1 / math.Pow(10, snr/10))
}
