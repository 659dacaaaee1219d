// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCII85Decode_RoundTrip(t *testing.T) {
	out, err := ascii85Decode([]byte("87cURDn"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(out))
}

func TestASCII85Decode_ZShorthand(t *testing.T) {
	out, err := ascii85Decode([]byte("z"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, out)
}

func TestASCII85Decode_WhitespaceTolerant(t *testing.T) {
	out, err := ascii85Decode([]byte("87c URDn"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(out))
}

func TestASCII85Decode_EODMarker(t *testing.T) {
	out, err := ascii85Decode([]byte("87cURDn~>"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(out))
}

func TestASCIIHexDecode_Exact(t *testing.T) {
	out, err := asciiHexDecode([]byte("48656C6C6F>"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(out))
}

func TestASCIIHexDecode_OddPadded(t *testing.T) {
	out, err := asciiHexDecode([]byte("48656C6C6>"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x65, 0x6C, 0x6C, 0x60}, out)
}

func TestRunLengthDecode_LiteralAndRepeat(t *testing.T) {
	// literal run "AB" (length byte 1 = 2 bytes), repeat 'C' x3 (length byte 254), EOD
	data := []byte{1, 'A', 'B', 254, 'C', 128}
	out, err := runLengthDecode(data)
	require.NoError(t, err)
	assert.Equal(t, "ABCCC", string(out))
}

func TestDecodeStream_FlateDecode(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte("hello stream"))
	zw.Close()

	s := &Stream{
		Metadata: Dict{"Filter": Name("FlateDecode")},
		Bytes:    buf.Bytes(),
	}
	out, err := DecodeStream(s, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hello stream", string(out))
}

func TestDecodeStream_ReverseOrderChain(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte("48656C6C6F")) // hex for "Hello", pre-hex-encoded before flate
	zw.Close()

	s := &Stream{
		Metadata: Dict{"Filter": Array{Name("ASCIIHexDecode"), Name("FlateDecode")}},
		Bytes:    buf.Bytes(),
	}
	out, err := DecodeStream(s, NewDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(out))
}

func TestDecodeStream_RunLengthGatedByConfig(t *testing.T) {
	s := &Stream{
		Metadata: Dict{"Filter": Name("RunLengthDecode")},
		Bytes:    []byte{1, 'A', 'B', 128},
	}
	_, err := DecodeStream(s, NewDefaultConfig())
	require.Error(t, err)

	cfg := NewDefaultConfig()
	cfg.AllowExtraFilters = true
	out, err := DecodeStream(s, cfg)
	require.NoError(t, err)
	assert.Equal(t, "AB", string(out))
}
