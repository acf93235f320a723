package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/AnatoleLucet/frp"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrInvalidStage = errors.New("invalid stage")
)

// Stage is one combinator applied to the line stream.
type Stage struct {
	// distinct, match, upper, lower, trim, take, limit, skip, throttle or defer
	Kind string `yaml:"stage"`

	// regular expression of a match stage
	Pattern string `yaml:"pattern,omitempty"`

	// count of take, limit and skip stages
	N int `yaml:"n,omitempty"`

	// window of throttle and defer stages, e.g. "50ms"
	Duration time.Duration `yaml:"duration,omitempty"`
}

func (s Stage) String() string {
	switch s.Kind {
	case "match":
		return fmt.Sprintf("match(%q)", s.Pattern)
	case "take", "limit", "skip":
		return fmt.Sprintf("%s(%d)", s.Kind, s.N)
	case "throttle", "defer":
		return fmt.Sprintf("%s(%s)", s.Kind, s.Duration)
	default:
		return s.Kind
	}
}

// Config is the content of a pipeline file.
//
//	stages:
//	  - stage: match
//	    pattern: "^ERROR"
//	  - stage: distinct
//	  - stage: throttle
//	    duration: 200ms
//	linger: 1s
//	log_level: debug
type Config struct {
	Stages []Stage `yaml:"stages"`

	// how long to keep the loop running after the input ends, on top of
	// waiting for pending timers
	Linger time.Duration `yaml:"linger"`

	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads a pipeline file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes a pipeline file and validates its stages.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}

	for i, stage := range cfg.Stages {
		if err := stage.validate(); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
	}

	return &cfg, nil
}

func (s Stage) validate() error {
	switch s.Kind {
	case "distinct", "upper", "lower", "trim":
		return nil
	case "match":
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return fmt.Errorf("%w: match: %w", ErrInvalidStage, err)
		}
		return nil
	case "take", "limit", "skip":
		if s.N < 0 {
			return fmt.Errorf("%w: %s: negative count %d", ErrInvalidStage, s.Kind, s.N)
		}
		return nil
	case "throttle", "defer":
		if s.Duration < 0 {
			return fmt.Errorf("%w: %s: negative duration %s", ErrInvalidStage, s.Kind, s.Duration)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStage, s.Kind)
	}
}

// Build chains the stages onto src, in order, and returns the last stream.
// Timed stages schedule on the calling goroutine's loop.
func Build(src *frp.EventStream[string], stages []Stage) (*frp.EventStream[string], error) {
	out := src

	for i, stage := range stages {
		if err := stage.validate(); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}

		switch stage.Kind {
		case "distinct":
			out = out.Distinct()
		case "match":
			out = out.Filter(regexp.MustCompile(stage.Pattern).MatchString)
		case "upper":
			out = out.Map(strings.ToUpper)
		case "lower":
			out = out.Map(strings.ToLower)
		case "trim":
			out = out.Map(strings.TrimSpace)
		case "take":
			out = out.Take(stage.N)
		case "limit":
			out = limit(out, stage.N)
		case "skip":
			out = out.TakeAfter(stage.N)
		case "throttle":
			out = out.Throttle(stage.Duration)
		case "defer":
			out = out.Defer(stage.Duration)
		}
	}

	return out, nil
}

// limit forwards exactly n events. Take forwards one more.
func limit(s *frp.EventStream[string], n int) *frp.EventStream[string] {
	seen := 0
	return s.TakeWhile(func(string) bool {
		seen++
		return seen <= n
	})
}
