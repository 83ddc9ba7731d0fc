package softdecision

import (
	"fmt"
	"io/ioutil"

	"github.com/nathanhack/ldpc/lane"
	"github.com/nathanhack/ldpc/ldpc"
	"gopkg.in/yaml.v3"
)

// Schedules
const (
	Flooding        = "flooding"
	LayeredSchedule = "layered"
)

// Elements
const (
	Float32 = "float32"
	Float64 = "float64"
	Int8    = "int8"
)

//Config selects and tunes a decoder. Lanes 0 picks the widest lane the CPU
// handles well, 1 decodes one codeword at a time. Precision scales LLRs before
// they are converted to the element type.
type Config struct {
	Algorithm     string  `yaml:"algorithm"`
	Schedule      string  `yaml:"schedule"`
	Trials        int     `yaml:"trials"`
	Factor        float64 `yaml:"factor"`
	Lambda        int     `yaml:"lambda"`
	SelfCorrected bool    `yaml:"self_corrected"`
	Element       string  `yaml:"element"`
	Lanes         int     `yaml:"lanes"`
	Precision     float64 `yaml:"precision"`
}

func DefaultConfig() Config {
	p := DefaultParams()
	return Config{
		Algorithm: MinSum.String(),
		Schedule:  Flooding,
		Trials:    DefaultTrials,
		Factor:    p.Factor,
		Lambda:    p.Lambda,
		Element:   Float32,
		Lanes:     1,
		Precision: 1,
	}
}

//LoadConfig reads a yaml file on top of DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %v: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Kind() (Kind, error) {
	return ParseKind(c.Algorithm)
}

func (c Config) Params() Params {
	return Params{Factor: c.Factor, Lambda: c.Lambda, SelfCorrected: c.SelfCorrected}
}

func (c Config) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return err
	}
	if c.Schedule != Flooding && c.Schedule != LayeredSchedule {
		return fmt.Errorf("%w: schedule %q, expected %v or %v", ErrUnknownKind, c.Schedule, Flooding, LayeredSchedule)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials > 0 required but found %v", c.Trials)
	}
	if c.Precision <= 0 {
		return fmt.Errorf("precision > 0 required but found %v", c.Precision)
	}
	if kind == MinSumC && c.Factor <= 0 {
		return fmt.Errorf("factor > 0 required but found %v", c.Factor)
	}
	if kind == LambdaMin && c.Lambda < 1 {
		return fmt.Errorf("lambda >= 1 required but found %v", c.Lambda)
	}

	switch c.Element {
	case Float32, Float64:
	case Int8:
		if kind.float() {
			return fmt.Errorf("%w: %v needs floating point elements but found %v", ErrUnsupportedElement, kind, c.Element)
		}
	default:
		return fmt.Errorf("%w: %q, expected %v, %v or %v", ErrUnsupportedElement, c.Element, Float32, Float64, Int8)
	}

	if c.Lanes == 0 {
		return nil
	}
	for _, w := range lane.Widths {
		if c.Lanes == w {
			return nil
		}
	}
	return fmt.Errorf("lanes must be 0 or one of %v but found %v", lane.Widths, c.Lanes)
}

func (c Config) elementSize() int {
	switch c.Element {
	case Float64:
		return 8
	case Int8:
		return 1
	}
	return 4
}

//Width resolves Lanes against the CPU.
func (c Config) Width() int {
	if c.Lanes == 0 {
		return lane.PreferredWidth(c.elementSize())
	}
	return c.Lanes
}

//NewBatch builds the decoder the config describes for d.
func (c Config) NewBatch(d ldpc.Descriptor) (Batch, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := c.Kind()
	p, s, prec := c.Params(), c.Schedule, c.Precision

	switch c.Element {
	case Float32:
		switch c.Width() {
		case 1:
			return newScalarBatch[float32](d, kind, p, s, prec)
		case 4:
			return newVectorBatch[float32, [4]float32](d, kind, p, s, prec)
		case 8:
			return newVectorBatch[float32, [8]float32](d, kind, p, s, prec)
		case 16:
			return newVectorBatch[float32, [16]float32](d, kind, p, s, prec)
		case 32:
			return newVectorBatch[float32, [32]float32](d, kind, p, s, prec)
		case 64:
			return newVectorBatch[float32, [64]float32](d, kind, p, s, prec)
		}
	case Float64:
		switch c.Width() {
		case 1:
			return newScalarBatch[float64](d, kind, p, s, prec)
		case 4:
			return newVectorBatch[float64, [4]float64](d, kind, p, s, prec)
		case 8:
			return newVectorBatch[float64, [8]float64](d, kind, p, s, prec)
		case 16:
			return newVectorBatch[float64, [16]float64](d, kind, p, s, prec)
		case 32:
			return newVectorBatch[float64, [32]float64](d, kind, p, s, prec)
		case 64:
			return newVectorBatch[float64, [64]float64](d, kind, p, s, prec)
		}
	case Int8:
		switch c.Width() {
		case 1:
			return newScalarBatch[int8](d, kind, p, s, prec)
		case 4:
			return newVectorBatch[int8, [4]int8](d, kind, p, s, prec)
		case 8:
			return newVectorBatch[int8, [8]int8](d, kind, p, s, prec)
		case 16:
			return newVectorBatch[int8, [16]int8](d, kind, p, s, prec)
		case 32:
			return newVectorBatch[int8, [32]int8](d, kind, p, s, prec)
		case 64:
			return newVectorBatch[int8, [64]int8](d, kind, p, s, prec)
		}
	}
	return nil, fmt.Errorf("%w: %v x %v", ErrUnsupportedElement, c.Element, c.Width())
}
