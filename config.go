// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/coldframe-dev/pdfdoc/logger"
)

// ParsingMode selects how tolerant the object parser is of malformed input.
type ParsingMode string

const (
	// Strict rejects a dictionary key that has no value before the closing
	// ">>"; this is the only check the two modes treat differently.
	Strict ParsingMode = "strict"
	// BestEffort accepts a dictionary key with no value before the closing
	// ">>" as an implicit Null, per SPEC_FULL.md §4.3.
	BestEffort ParsingMode = "best-effort"
)

// Config holds the limits and toggles that govern a Document's parsing and
// a Processor's batch behavior.
type Config struct {
	MaxConcurrentPDFs int           `validate:"min=1,max=10"`
	MaxWorkersPerPDF  int           `validate:"min=1,max=10"`
	WorkerTimeout     time.Duration `validate:"required"`
	ParsingMode       ParsingMode   `validate:"oneof=strict best-effort"`
	MaxRetries        int           `validate:"min=0,max=3"`
	MaxTotalChars     int           `validate:"min=0"`
	// MaxNestingDepth bounds recursive object parsing (nested
	// arrays/dictionaries) and page/outline tree walks, guarding against
	// maliciously or accidentally cyclic structures.
	MaxNestingDepth int `validate:"min=1"`
	// AllowExtraFilters enables the supplemental RunLengthDecode filter and
	// the PNG-predictor-aware FlateDecode variant. Off by default: a file
	// relying on either fails with NotSupportFilter, matching the documented
	// default behavior.
	AllowExtraFilters bool
	DebugOn           bool
	Logger            logger.LogFunc
}

// NewDefaultConfig returns the configuration new callers should start from.
func NewDefaultConfig() *Config {
	return &Config{
		MaxConcurrentPDFs: 5,
		MaxWorkersPerPDF:  1,
		WorkerTimeout:     5 * time.Second,
		ParsingMode:       Strict,
		MaxRetries:        3,
		MaxTotalChars:     0,
		MaxNestingDepth:   64,
		AllowExtraFilters: false,
		DebugOn:           false,
	}
}

// Validate reports whether cfg's fields satisfy their constraints.
func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}
