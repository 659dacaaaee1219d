// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Package pdfdoc implements read-only parsing of the Portable Document
// Format (PDF).
//
// # Overview
//
// A PDF file is a byte stream whose logical structure is reconstructed from
// offsets written inside the file itself: a cross-reference (xref) table
// maps object numbers to byte offsets, objects are parsed lazily from those
// offsets, and the document catalog roots a page tree and, optionally, an
// outline (bookmark) tree.
//
// This package exposes that structure in four layers, each building on the
// one below it:
//
//	Sequence   — a seekable, buffered view over the file's bytes.
//	Tokenizer  — a lexical scanner producing PDF tokens from a Sequence.
//	Parser     — recursive descent over tokens, producing Objects.
//	Document   — merges the xref chain, builds the page/outline trees, and
//	             exposes query operations to callers.
//
// Content-stream interpretation (text and graphics operators), font
// rendering, image decoding, PDF encryption, and PDF writing are explicitly
// out of scope; callers needing those build on top of the Object graph this
// package exposes.
package pdfdoc

// BUG: there is no support for closing a Document's underlying file handle
// automatically; callers that open by path should arrange to close it, e.g.
// via Document.Close.

// BUG: cross-reference streams (PDF 1.5+) are not supported. A file relying
// solely on an xref stream fails to open with ErrXrefTableNotFound.
