package softdecision

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/lane"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decoder.yaml")
	yaml := []byte("algorithm: min-sum-c\nschedule: layered\nfactor: 3\nelement: int8\nlanes: 16\nprecision: 2\n")
	if err := os.WriteFile(path, yaml, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := DefaultConfig()
	expected.Algorithm = "min-sum-c"
	expected.Schedule = LayeredSchedule
	expected.Factor = 3
	expected.Element = Int8
	expected.Lanes = 16
	expected.Precision = 2
	if cfg != expected {
		t.Fatalf("expected %+v but found %+v", expected, cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	with := func(f func(c *Config)) Config {
		c := DefaultConfig()
		f(&c)
		return c
	}
	tests := []struct {
		cfg      Config
		ok       bool
		expected error
	}{
		{DefaultConfig(), true, nil},
		{with(func(c *Config) { c.Lanes = 0 }), true, nil},
		{with(func(c *Config) { c.Algorithm = "sum-product"; c.Element = Float64 }), true, nil},
		{with(func(c *Config) { c.Algorithm = "magic" }), false, ErrUnknownKind},
		{with(func(c *Config) { c.Schedule = "random" }), false, ErrUnknownKind},
		{with(func(c *Config) { c.Algorithm = "log-domain-spa"; c.Element = Int8 }), false, ErrUnsupportedElement},
		{with(func(c *Config) { c.Element = "complex64" }), false, ErrUnsupportedElement},
		{with(func(c *Config) { c.Trials = 0 }), false, nil},
		{with(func(c *Config) { c.Lanes = 3 }), false, nil},
		{with(func(c *Config) { c.Precision = 0 }), false, nil},
		{with(func(c *Config) { c.Algorithm = "lambda-min"; c.Lambda = 0 }), false, nil},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := test.cfg.Validate()
			if test.ok {
				if err != nil {
					t.Fatalf("expected no error but found %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error")
			}
			if test.expected != nil && !errors.Is(err, test.expected) {
				t.Fatalf("expected %v but found %v", test.expected, err)
			}
		})
	}
}

func TestConfig_NewBatch(t *testing.T) {
	c := lookup(t, "short")
	r := rand.New(rand.NewSource(2))
	flips := []int{7, 300, 640}

	for _, element := range []string{Float32, Float64, Int8} {
		for _, lanes := range lane.Widths {
			t.Run(element+"/"+strconv.Itoa(lanes), func(t *testing.T) {
				cfg := DefaultConfig()
				cfg.Element = element
				cfg.Lanes = lanes
				cfg.Precision = 2

				batch, err := cfg.NewBatch(c)
				if err != nil {
					t.Fatal(err)
				}
				if batch.Lanes() != lanes {
					t.Fatalf("expected %v lanes but found %v", lanes, batch.Lanes())
				}

				//one codeword less than the width leaves a padding lane
				n := lanes - 1
				if n == 0 {
					n = 1
				}
				originals := make([][]float64, n)
				codewords := make([][]float64, n)
				for i := range codewords {
					originals[i] = codeword(c, r, 3)
					codewords[i] = append([]float64(nil), originals[i]...)
					for _, f := range flips {
						codewords[i][f] = -codewords[i][f]
					}
				}

				results := batch.Decode(codewords, cfg.Trials)
				for i, remaining := range results {
					if !Converged(remaining) {
						t.Fatalf("codeword %v: expected to converge but found %v", i, remaining)
					}
					for j := range originals[i] {
						if (codewords[i][j] > 0) != (originals[i][j] > 0) {
							t.Fatalf("codeword %v: expected position %v to be corrected", i, j)
						}
					}
				}
			})
		}
	}
}

func TestVectorBatch_PartialFailure(t *testing.T) {
	c := lookup(t, "tiny")
	r := rand.New(rand.NewSource(4))

	cfg := DefaultConfig()
	cfg.Lanes = 4
	cfg.Trials = 5
	batch, err := cfg.NewBatch(c)
	if err != nil {
		t.Fatal(err)
	}

	//the second codeword carries no information and can not converge
	codewords := [][]float64{codeword(c, r, 4), make([]float64, c.CodeLen())}
	codewords[0][15] = -codewords[0][15]
	results := batch.Decode(codewords, cfg.Trials)
	if results[0] != 0 || results[1] != -1 {
		t.Fatalf("expected [0 -1] but found %v", results)
	}
}

func TestVectorBatch_Empty(t *testing.T) {
	c := lookup(t, "tiny")

	cfg := DefaultConfig()
	cfg.Lanes = 8
	batch, err := cfg.NewBatch(c)
	if err != nil {
		t.Fatal(err)
	}

	results := batch.Decode(nil, cfg.Trials)
	if len(results) != 0 {
		t.Fatalf("expected no results but found %v", results)
	}
}
