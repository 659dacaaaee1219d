// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"bytes"
	"io"
	"os"
)

// Sequence abstracts a seekable, readable byte source of known total size,
// implementing spec §4.1. Two concrete implementations exist: fileSequence
// (backed by an *os.File) and byteSequence (backed by an in-memory byte
// slice); both let the rest of the stack stay source-agnostic, the way the
// teacher's Reader accepts any io.ReaderAt rather than hard-coding a file.
type Sequence interface {
	// Read fills dst with up to len(dst) bytes from the current position,
	// returning the count actually read. Zero (with err == nil or io.EOF)
	// indicates end of stream.
	Read(dst []byte) (int, error)
	// ReadLine reads up to, and excluding, the next line terminator
	// (CR, LF, or CRLF). Returns ErrEOFError if none is found before EOF.
	ReadLine() ([]byte, error)
	// Seek positions the sequence absolutely. Returns ErrSeekExceed if pos
	// exceeds Size().
	Seek(pos int64) (int64, error)
	// Size returns the total size in bytes.
	Size() int64
	// Pos returns the current read position.
	Pos() int64
}

type fileSequence struct {
	f   *os.File
	pos int64
	end int64
}

// NewFileSequence opens path and wraps it as a Sequence.
func NewFileSequence(path string) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIOError, "open "+path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, wrapErr(KindIOError, "stat "+path, err)
	}
	return &fileSequence{f: f, end: fi.Size()}, nil
}

func (s *fileSequence) Read(dst []byte) (int, error) {
	n, err := s.f.ReadAt(dst, s.pos)
	s.pos += int64(n)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

func (s *fileSequence) ReadLine() ([]byte, error) {
	return readLine(s)
}

func (s *fileSequence) Seek(pos int64) (int64, error) {
	if pos > s.end {
		return s.pos, ErrSeekExceed
	}
	s.pos = pos
	return s.pos, nil
}

func (s *fileSequence) Size() int64 { return s.end }
func (s *fileSequence) Pos() int64  { return s.pos }

// Close releases the underlying file handle.
func (s *fileSequence) Close() error { return s.f.Close() }

type byteSequence struct {
	data []byte
	pos  int64
}

// NewByteSequence wraps an in-memory byte slice as a Sequence.
func NewByteSequence(data []byte) Sequence {
	return &byteSequence{data: data}
}

func (s *byteSequence) Read(dst []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, nil
	}
	n := copy(dst, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *byteSequence) ReadLine() ([]byte, error) {
	return readLine(s)
}

func (s *byteSequence) Seek(pos int64) (int64, error) {
	if pos > int64(len(s.data)) {
		return s.pos, ErrSeekExceed
	}
	s.pos = pos
	return s.pos, nil
}

func (s *byteSequence) Size() int64 { return int64(len(s.data)) }
func (s *byteSequence) Pos() int64  { return s.pos }

// readLine implements ReadLine generically atop Read, one byte at a time.
// Sequences are always wrapped by the Tokenizer's own buffer for anything
// performance sensitive; the parsing pipeline itself does not call
// ReadLine (locateStartxref scans its tail buffer directly).
func readLine(s Sequence) ([]byte, error) {
	var buf bytes.Buffer
	one := make([]byte, 1)
	for {
		n, err := s.Read(one)
		if n == 0 {
			if err != nil {
				return nil, wrapErr(KindIOError, "read_line", err)
			}
			return nil, ErrEOFError
		}
		b := one[0]
		if b == '\n' {
			return buf.Bytes(), nil
		}
		if b == '\r' {
			// Peek for an optional following LF to consume CRLF as one terminator.
			save := s.(interface{ Pos() int64 }).Pos()
			var peek [1]byte
			pn, _ := s.Read(peek[:])
			if pn == 1 && peek[0] != '\n' {
				s.Seek(save)
			}
			return buf.Bytes(), nil
		}
		buf.WriteByte(b)
	}
}
