package tools

import (
	"path/filepath"
	"testing"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/ldpc"
	"github.com/nathanhack/ldpc/messagepassing/softdecision"
)

func TestSaveLoadResults(t *testing.T) {
	code, err := ldpc.Lookup("tiny")
	if err != nil {
		t.Fatal(err)
	}

	var low, high benchmarking.Stats
	low.FrameError.Update(1)
	low.FrameError.Update(0)
	high.FrameError.Update(0)

	expected := &SimulationStats{
		TypeInfo: "AWGN:SNR:min-sum/flooding",
		ECCInfo:  Md5Sum(code),
		Decoder:  softdecision.DefaultConfig(),
		Stats:    map[float64]benchmarking.Stats{0.5: low, 3: high},
	}

	path := filepath.Join(t.TempDir(), "results.json")
	if err := SaveResults(path, expected); err != nil {
		t.Fatal(err)
	}
	actual, err := LoadResults(path)
	if err != nil {
		t.Fatal(err)
	}

	if actual.TypeInfo != expected.TypeInfo || actual.ECCInfo != expected.ECCInfo || actual.Decoder != expected.Decoder {
		t.Fatalf("expected %v but found %v", expected, actual)
	}
	if len(actual.Stats) != 2 {
		t.Fatalf("expected %v but found %v", 2, len(actual.Stats))
	}
	if actual.Stats[0.5].FrameError.Mean != 0.5 || actual.Stats[0.5].Trials() != 2 {
		t.Fatalf("expected %v but found %v", low, actual.Stats[0.5])
	}
}

func TestLoadResults_Missing(t *testing.T) {
	actual, err := LoadResults(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil || actual != nil {
		t.Fatalf("expected nil but found %v %v", actual, err)
	}
}

func TestMd5Sum(t *testing.T) {
	tiny, _ := ldpc.Lookup("tiny")
	short, _ := ldpc.Lookup("short")

	if Md5Sum(tiny) != Md5Sum(tiny) {
		t.Fatalf("expected the same sum")
	}
	if Md5Sum(tiny) == Md5Sum(short) {
		t.Fatalf("expected different sums")
	}
}

func TestMetric(t *testing.T) {
	var s benchmarking.Stats
	s.FrameError.Update(1)
	s.MessageError.Update(0.25)
	s.CodewordError.Update(0.125)

	if m := Metric(s, false, false); m != 1 {
		t.Fatalf("expected %v but found %v", 1, m)
	}
	if m := Metric(s, true, false); m != 0.25 {
		t.Fatalf("expected %v but found %v", 0.25, m)
	}
	if m := Metric(s, false, true); m != 0.125 {
		t.Fatalf("expected %v but found %v", 0.125, m)
	}
}
