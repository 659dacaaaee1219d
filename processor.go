// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/coldframe-dev/pdfdoc/logger"
)

// OpenResult is one path's outcome from a batch Open call.
type OpenResult struct {
	Path string
	Doc  *Document
	Err  error
}

// Processor runs Document opens across many files concurrently, per
// SPEC_FULL.md §5's Batch Processor. Each path gets its own *Document
// exclusively owned by one goroutine, preserving spec §5's single-threaded-
// per-document invariant; only the fan-out across files is concurrent.
// This repurposes the teacher's per-page worker pool (sized for intra-
// document page parallelism, which spec §5 forbids) into inter-document
// parallelism instead.
type Processor struct {
	cfg *Config
	sem *semaphore.Weighted
}

// NewProcessor validates cfg and returns a Processor bounded by
// Config.MaxConcurrentPDFs concurrent opens.
func NewProcessor(cfg *Config) (*Processor, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, wrapErr(KindInvalidPDFDocument, "invalid config", err)
	}
	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}
	logger.Debug(fmt.Sprintf("Processor initialized: parsing_mode=%v, max_concurrent_pdfs=%d",
		cfg.ParsingMode, cfg.MaxConcurrentPDFs), true)
	return &Processor{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrentPDFs)),
	}, nil
}

// OpenAll opens every path, at most Config.MaxConcurrentPDFs at a time,
// and returns one OpenResult per path in the same order as paths. A path
// whose failure is an I/O error is retried up to Config.MaxRetries times
// under Config.WorkerTimeout each attempt; structural parse failures
// (malformed PDF, missing xref, ...) are not retried, since retrying would
// not change the outcome.
func (p *Processor) OpenAll(ctx context.Context, paths []string) []OpenResult {
	results := make([]OpenResult, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if err := p.sem.Acquire(ctx, 1); err != nil {
				results[i] = OpenResult{Path: path, Err: wrapErr(KindIOError, "acquire slot", err)}
				return
			}
			defer p.sem.Release(1)

			doc, err := p.openWithRetries(ctx, path)
			results[i] = OpenResult{Path: path, Doc: doc, Err: err}
		}(i, path)
	}
	wg.Wait()
	return results
}

func (p *Processor) openWithRetries(ctx context.Context, path string) (*Document, error) {
	var lastErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.WorkerTimeout)
		doc, err := openUnderContext(attemptCtx, path, p.cfg)
		cancel()
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("retrying open: path=%s attempt=%d err=%v", path, attempt, err), true)
	}
	return nil, lastErr
}

// isRetryable reports whether err is worth retrying: only I/O errors
// (transient read failures, contended file handles), never a structural
// parse error, since a malformed file will fail identically every time.
func isRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == KindIOError
	}
	return false
}

func openUnderContext(ctx context.Context, path string, cfg *Config) (*Document, error) {
	type result struct {
		doc *Document
		err error
	}
	done := make(chan result, 1)
	go func() {
		doc, err := Open(path, cfg)
		done <- result{doc, err}
	}()
	select {
	case <-ctx.Done():
		return nil, wrapErr(KindIOError, "open timed out", ctx.Err())
	case r := <-done:
		return r.doc, r.err
	}
}
