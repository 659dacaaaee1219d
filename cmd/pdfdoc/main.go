// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/coldframe-dev/pdfdoc"
	"github.com/coldframe-dev/pdfdoc/tracer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "pages":
		err = runPages(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		tracer.Flush()
		fmt.Fprintln(os.Stderr, "pdfdoc:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pdfdoc <info|pages|batch> [flags] <file...>")
}

// infoReport is the JSON shape emitted by the "info" subcommand, grounded
// on the teacher's Metadata/MetadataJSON (metadata.go:318).
type infoReport struct {
	Version   string          `json:"version"`
	PageCount int             `json:"pageCount"`
	Encrypted bool            `json:"encrypted"`
	Info      *pdfdoc.DocInfo `json:"info,omitempty"`
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("info requires exactly one file")
	}
	doc, err := pdfdoc.Open(fs.Arg(0), pdfdoc.NewDefaultConfig())
	if err != nil {
		return err
	}
	defer doc.Close()

	report := infoReport{
		Version:   doc.Version().String(),
		PageCount: doc.PageCount(),
		Encrypted: doc.Encrypted(),
	}
	if info, ok := doc.Info(); ok {
		report.Info = &info
	}
	return json.NewEncoder(os.Stdout).Encode(report)
}

func runPages(args []string) error {
	fs := flag.NewFlagSet("pages", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("pages requires exactly one file")
	}
	doc, err := pdfdoc.Open(fs.Arg(0), pdfdoc.NewDefaultConfig())
	if err != nil {
		return err
	}
	defer doc.Close()

	for _, id := range doc.PageIds() {
		fmt.Printf("%d %d\n", id.ObjNum(), id.GenNum())
	}
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	concurrency := fs.Int("concurrency", 4, "max concurrent PDFs")
	timeout := fs.Duration("timeout", 10*time.Second, "per-file open timeout")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("batch requires at least one file")
	}

	cfg := pdfdoc.NewDefaultConfig()
	cfg.MaxConcurrentPDFs = *concurrency
	cfg.WorkerTimeout = *timeout

	proc, err := pdfdoc.NewProcessor(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout*time.Duration(fs.NArg()))
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	results := proc.OpenAll(ctx, fs.Args())
	for _, r := range results {
		if r.Err != nil {
			if err := enc.Encode(batchResult{Path: r.Path, Error: r.Err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(batchResult{
			Path:      r.Path,
			PageCount: r.Doc.PageCount(),
			Version:   r.Doc.Version().String(),
		}); err != nil {
			return err
		}
		r.Doc.Close()
	}
	return nil
}

// batchResult is one JSON line of "batch" output: either a successful open's
// summary or an error, per file.
type batchResult struct {
	Path      string `json:"path"`
	PageCount int    `json:"pageCount,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}
