// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"bytes"
	"compress/zlib"
	"io"
)

// DecodeStream applies s's declared filter chain in reverse order to obtain
// the decoded bytes, per spec §4.6/§8's A^-1(B^-1(raw)) property. Core
// filters (FlateDecode, ASCIIHexDecode, ASCII85Decode) are always available;
// RunLengthDecode and predictor-aware FlateDecode require
// Config.AllowExtraFilters.
func DecodeStream(s *Stream, cfg *Config) ([]byte, error) {
	names, parms := streamFilters(s.Metadata)
	data := s.Bytes
	for i := len(names) - 1; i >= 0; i-- {
		var err error
		data, err = applyFilter(names[i], data, parms[i], cfg)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func streamFilters(d Dict) ([]string, []Dict) {
	filterObj, ok := d.Get("Filter")
	if !ok {
		return nil, nil
	}
	parmObj, _ := d.Get("DecodeParms")
	switch f := filterObj.(type) {
	case Name:
		return []string{string(f)}, []Dict{asDict(parmObj)}
	case Array:
		names := make([]string, len(f))
		parms := make([]Dict, len(f))
		parmArr, _ := parmObj.(Array)
		for i, el := range f {
			if n, ok := el.(Name); ok {
				names[i] = string(n)
			}
			if i < len(parmArr) {
				parms[i] = asDict(parmArr[i])
			}
		}
		return names, parms
	}
	return nil, nil
}

func asDict(o Object) Dict {
	if d, ok := o.(Dict); ok {
		return d
	}
	return nil
}

func applyFilter(name string, data []byte, parm Dict, cfg *Config) ([]byte, error) {
	switch name {
	case "FlateDecode":
		return flateDecode(data, parm, cfg)
	case "ASCIIHexDecode":
		return asciiHexDecode(data)
	case "ASCII85Decode":
		return ascii85Decode(data)
	case "RunLengthDecode":
		if !cfg.AllowExtraFilters {
			return nil, newErr(KindNotSupportFilter, name)
		}
		return runLengthDecode(data)
	default:
		return nil, newErr(KindNotSupportFilter, name)
	}
}

func flateDecode(data []byte, parm Dict, cfg *Config) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr(KindIllegalStream, "zlib init", err)
	}
	defer zr.Close()

	predictor := 1
	if parm != nil {
		if v, ok := parm.Get("Predictor"); ok {
			predictor = intOf(v, 1)
		}
	}
	if predictor == 1 {
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, wrapErr(KindIllegalStream, "inflate", err)
		}
		return out, nil
	}
	if predictor != 12 || !cfg.AllowExtraFilters {
		return nil, newErr(KindNotSupportFilter, "FlateDecode predictor")
	}
	columns := 1
	if v, ok := parm.Get("Columns"); ok {
		columns = intOf(v, 1)
	}
	return pngUpDecode(zr, columns)
}

func intOf(o Object, def int) int {
	switch n := o.(type) {
	case Integer:
		return int(n)
	case Real:
		return int(n)
	}
	return def
}

// asciiHexDecode reads <...> hex-stream content: whitespace ignored, an
// optional trailing '>' terminator, odd nibble count padded with a
// trailing zero (spec §8 scenario 4).
func asciiHexDecode(data []byte) ([]byte, error) {
	var nibbles []byte
	for _, b := range data {
		if b == '>' {
			break
		}
		if isWhitespaceByte(b) {
			continue
		}
		v, ok := hexVal(b)
		if !ok {
			return nil, newErr(KindPDFParseError, "invalid hex digit in stream")
		}
		nibbles = append(nibbles, v)
	}
	if len(nibbles)%2 == 1 {
		nibbles = append(nibbles, 0)
	}
	out := make([]byte, len(nibbles)/2)
	for i := 0; i < len(out); i++ {
		out[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return out, nil
}

// ascii85Lookup maps a partial group's character count (1-5) to the number
// of decoded bytes it yields, mirroring original_source/filter.rs exactly.
var ascii85Lookup = [5]int{1, 1, 2, 3, 4}

// ascii85Decode decodes ASCII85 (base-85) encoded bytes, treating 'z' as a
// shorthand for four zero bytes and stopping at an EOD marker '~' if
// present, per spec §8 scenario 3.
func ascii85Decode(buf []byte) ([]byte, error) {
	var out []byte
	var t [5]byte
	w := 0
	l := len(buf)
	for i := 0; i < l; i++ {
		b := buf[i]
		if b == 'z' && w == 0 {
			out = append(out, 0, 0, 0, 0)
			continue
		}
		if b == '\n' || b == '\r' || b == '\t' || b == ' ' || b == '\f' || b == 0 {
			continue
		}
		if b == '~' {
			break
		}
		if b < 33 || b > 117 {
			return nil, newErr(KindPDFParseError, "invalid ascii85 byte")
		}
		t[4-w] = b - 33
		w++
		if w == 5 || i == l-1 {
			out = append(out, flushAscii85Group(t, w)...)
			w = 0
			t = [5]byte{}
		}
	}
	if w > 0 {
		out = append(out, flushAscii85Group(t, w)...)
	}
	return out, nil
}

func flushAscii85Group(t [5]byte, w int) []byte {
	var value uint32
	for j, v := range t {
		value += uint32(v) * pow85(j)
	}
	be := [4]byte{byte(value >> 24), byte(value >> 16), byte(value >> 8), byte(value)}
	return be[:ascii85Lookup[w-1]]
}

func pow85(exp int) uint32 {
	v := uint32(1)
	for i := 0; i < exp; i++ {
		v *= 85
	}
	return v
}
