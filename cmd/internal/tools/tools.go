package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/nathanhack/ldpc/messagepassing/softdecision"
)

//SimulationStats are the results of a channel simulation keyed by the signal
// to noise ratio in dB.
type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Decoder  softdecision.Config
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Decoder  softdecision.Config
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Decoder:  s.Decoder,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Decoder = ss.Decoder
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

//Md5Sum identifies a code by its parity check matrix.
func Md5Sum(d ldpc.Descriptor) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(ldpc.ParityCheck(d).String())))
}

//Metric selects the error rate the result tools report.
func Metric(stats benchmarking.Stats, message, codeword bool) float64 {
	switch {
	case message:
		return stats.MessageError.Mean
	case codeword:
		return stats.CodewordError.Mean
	default:
		return stats.FrameError.Mean
	}
}

func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	err = ioutil.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", filepath, err)
	}
	return nil
}
