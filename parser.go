// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import "strconv"

// Parser drives a Tokenizer through spec §4.3's recursive descent grammar,
// producing Objects. It carries a Config so strict-vs-lenient dictionary
// behavior and the nesting-depth guard are available without threading
// extra parameters through every call.
type Parser struct {
	tok   *Tokenizer
	cfg   *Config
	depth int
}

// NewParser builds a Parser reading from tok under cfg.
func NewParser(tok *Tokenizer, cfg *Config) *Parser {
	return &Parser{tok: tok, cfg: cfg}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.cfg.MaxNestingDepth {
		return newErr(KindPDFParseError, "nesting depth exceeded")
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// ParseObject parses one direct object starting at the next token. Indirect
// object headers (`N G obj`) and "N G R" references are recognized here,
// since both begin with a number token that needs a two-token lookahead to
// disambiguate from a plain Integer.
func (p *Parser) ParseObject() (Object, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok, err := p.tok.NextToken()
	if err != nil {
		return nil, err
	}
	return p.parseFromToken(tok)
}

func (p *Parser) parseFromToken(tok Token) (Object, error) {
	switch tok.Kind {
	case TokenEOF:
		return nil, ErrEOFError
	case TokenNumber:
		return p.parseNumberOrRef(tok)
	case TokenKey:
		switch tok.Text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return NullValue, nil
		}
		return nil, newErr(KindPDFParseError, "unexpected keyword "+tok.Text)
	case TokenDelimiter:
		switch tok.Text {
		case "/":
			return p.parseName()
		case "(":
			bytes, err := p.tok.ReadLiteralString()
			if err != nil {
				return nil, err
			}
			return PDFString{Kind: Literal, Bytes: bytes}, nil
		case "<":
			bytes, err := p.tok.ReadHexString()
			if err != nil {
				return nil, err
			}
			return PDFString{Kind: Hexadecimal, Bytes: bytes}, nil
		case "[":
			return p.parseArray()
		case "<<":
			return p.parseDictOrStream()
		}
		return nil, newErr(KindPDFParseError, "unexpected delimiter "+tok.Text)
	default:
		return nil, newErr(KindPDFParseError, "unexpected token")
	}
}

// parseNumberOrRef implements the "N", "N G R", and "N G obj ... endobj"
// disambiguation: a plain integer is followed by look-ahead for a second
// integer and then either "R" or "obj".
func (p *Parser) parseNumberOrRef(first Token) (Object, error) {
	if first.Num.Kind == NumReal {
		return first.Num.Object(), nil
	}

	afterFirst := p.tok.Pos()
	second, err := p.tok.NextToken()
	if err != nil {
		return nil, err
	}
	if second.Kind != TokenNumber || second.Num.Kind == NumReal {
		p.tok.PushBack(second)
		return first.Num.Object(), nil
	}

	third, err := p.tok.NextToken()
	if err != nil {
		return nil, err
	}
	objNum := uint32(first.Num.asUint())
	genNum := uint16(second.Num.asUint())

	switch {
	case third.IsKey("R"):
		return ObjectRef{ObjNum: objNum, GenNum: genNum}, nil
	case third.IsKey("obj"):
		inner, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if strm, ok := inner.(*Stream); ok {
			strm.ObjNum, strm.GenNum = objNum, genNum
		}
		end, err := p.tok.NextToken()
		if err != nil {
			return nil, err
		}
		if !end.IsKey("endobj") {
			return nil, newErr(KindPDFParseError, "expected endobj")
		}
		return IndirectObject{ObjNum: objNum, GenNum: genNum, Inner: inner}, nil
	default:
		// Neither "R" nor "obj": rewind to just after the first number so
		// the second and third tokens are read again, since the tokenizer
		// holds only one pushed-back token.
		if err := p.tok.Seek(afterFirst); err != nil {
			return nil, err
		}
		return first.Num.Object(), nil
	}
}

func (n PDFNumber) asUint() uint64 {
	if n.Kind == NumSigned {
		return uint64(n.Signed)
	}
	return n.Unsigned
}

// parseName reads a `/Name` body, assuming the leading '/' has already been
// consumed. Names do not nest delimiters, so this is a plain identifier
// scan reusing the tokenizer's delimiter classification; `#XX` hex escapes
// (spec §4.3) are decoded here.
func (p *Parser) parseName() (Object, error) {
	raw, err := p.tok.LoopUntil(isEndOfTokenByte)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '#' && i+2 < len(raw) {
			hi, ok1 := hexVal(raw[i+1])
			lo, ok2 := hexVal(raw[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, raw[i])
	}
	return Name(out), nil
}

// parseArray reads `[ obj obj ... ]`, assuming '[' already consumed.
func (p *Parser) parseArray() (Object, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var arr Array
	for {
		tok, err := p.tok.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.IsDelim("]") {
			return arr, nil
		}
		if tok.IsEOF() {
			return nil, ErrEOFError
		}
		obj, err := p.parseFromToken(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDictOrStream reads `<< /K v /K v ... >>`, assuming '<<' already
// consumed, and continues into a following `stream ... endstream` body if
// present, per spec §4.3/§4.6.
func (p *Parser) parseDictOrStream() (Object, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	dict := Dict{}
	for {
		tok, err := p.tok.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.IsDelim(">>") {
			break
		}
		if tok.IsEOF() {
			return nil, ErrEOFError
		}
		if !tok.IsDelim("/") {
			return nil, newErr(KindPDFParseError, "expected name key in dictionary")
		}
		keyObj, err := p.parseName()
		if err != nil {
			return nil, err
		}
		key := string(keyObj.(Name))

		valTok, err := p.tok.NextToken()
		if err != nil {
			return nil, err
		}
		if valTok.IsDelim(">>") {
			// A key with no value before the closing ">>": only legal in
			// BestEffort mode, per SPEC_FULL.md §4.3. A name following a key
			// is that key's value.
			if p.cfg.ParsingMode != BestEffort {
				return nil, newErr(KindPDFParseError, "missing value for key /"+key)
			}
			dict[key] = NullValue
			break
		}
		val, err := p.parseFromToken(valTok)
		if err != nil {
			return nil, err
		}
		dict[key] = val
	}

	streamTok, err := p.tok.NextToken()
	if err != nil {
		return nil, err
	}
	if !streamTok.IsKey("stream") {
		p.tok.PushBack(streamTok)
		return dict, nil
	}
	if _, err := p.tok.SkipCRLF(); err != nil {
		return nil, err
	}

	length, err := p.streamLength(dict)
	if err != nil {
		return nil, err
	}
	raw, err := p.tok.ReadBytes(length)
	if err != nil {
		return nil, err
	}
	endTok, err := p.tok.NextToken()
	if err != nil {
		return nil, err
	}
	if !endTok.IsKey("endstream") {
		return nil, newErr(KindIllegalStream, "missing endstream keyword")
	}
	return &Stream{Metadata: dict, Bytes: raw}, nil
}

// streamLength resolves the dictionary's /Length entry to a concrete byte
// count. An indirect /Length cannot be resolved here: the xref table may
// not exist yet mid-scan (this parser also runs during xref/trailer
// parsing, before any table is built), and there is no entry point
// elsewhere in this package that re-scans for `endstream` to recover one.
// A stream whose /Length is an indirect reference therefore fails with
// IllegalStream; only the direct-integer case is handled.
func (p *Parser) streamLength(dict Dict) (int, error) {
	v, ok := dict.Get("Length")
	if !ok {
		return 0, objectAttrMiss("Length")
	}
	switch n := v.(type) {
	case Integer:
		return int(n), nil
	case Real:
		return int(n), nil
	default:
		return 0, newErr(KindIllegalStream, "Length is not a direct integer")
	}
}

// ParseIndirectAt seeks to offset and parses the `N G obj ... endobj`
// header found there, as used when dereferencing an xref entry.
func (p *Parser) ParseIndirectAt(offset int64) (IndirectObject, error) {
	if err := p.tok.Seek(offset); err != nil {
		return IndirectObject{}, err
	}
	obj, err := p.ParseObject()
	if err != nil {
		return IndirectObject{}, err
	}
	ind, ok := obj.(IndirectObject)
	if !ok {
		return IndirectObject{}, newErr(KindPDFParseError, "expected indirect object header at offset "+strconv.FormatInt(offset, 10))
	}
	return ind, nil
}
