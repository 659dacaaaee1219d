// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import "sort"

// Document is the facade spec §4.7 describes: it owns the merged xref
// table, the PDF version, the tokenizer used for lazy reads, the page-tree
// arena, and the optional outline arena. A Document exclusively owns its
// tokenizer and sequence — concurrent callers must open separate Documents
// (spec §5).
type Document struct {
	seq      Sequence
	tok      *Tokenizer
	cfg      *Config
	version  PDFVersion
	xref     map[uint32]XEntry
	xrefList []XEntry
	trailer  Dict
	pages    *PageTreeArena
	outline  *OutlineTreeArena
	info     DocInfo
	hasInfo  bool
}

// Open opens the PDF file at path under cfg (NewDefaultConfig() if nil).
func Open(path string, cfg *Config) (*Document, error) {
	seq, err := NewFileSequence(path)
	if err != nil {
		return nil, err
	}
	doc, err := NewDocument(seq, cfg)
	if err != nil {
		if closer, ok := seq.(interface{ Close() error }); ok {
			closer.Close()
		}
		return nil, err
	}
	return doc, nil
}

// NewDocument runs the open pipeline spec §4.7 names: parse the version
// banner, locate the xref offset, merge the xref chain, build the page
// tree, build the outline (if present), and read /Info (if present).
func NewDocument(seq Sequence, cfg *Config) (*Document, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, wrapErr(KindInvalidPDFDocument, "invalid config", err)
	}

	version, err := parseVersion(seq)
	if err != nil {
		return nil, err
	}

	tok := NewTokenizer(seq)
	startOffset, err := locateStartxref(seq)
	if err != nil {
		return nil, err
	}
	table, trailer, err := mergeXrefChain(tok, cfg, startOffset)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		seq: seq, tok: tok, cfg: cfg,
		version: version, xref: table, trailer: trailer,
	}
	doc.xrefList = sortedXrefEntries(table)

	r := &resolver{tok: tok, cfg: cfg, xref: table}

	rootObj, ok := trailer.Get("Root")
	if !ok {
		return nil, objectAttrMiss("Root")
	}
	rootRef, ok := rootObj.(ObjectRef)
	if !ok {
		return nil, newErr(KindPDFParseError, "/Root is not an indirect reference")
	}
	catalog, err := r.fetchDict(rootRef.ObjNum, rootRef.GenNum)
	if err != nil {
		return nil, err
	}

	pagesObj, ok := catalog.Get("Pages")
	if !ok {
		return nil, objectAttrMiss("Pages")
	}
	pagesRef, ok := pagesObj.(ObjectRef)
	if !ok {
		return nil, newErr(KindPDFParseError, "/Pages is not an indirect reference")
	}
	pages, err := buildPageTree(r, pagesRef)
	if err != nil {
		return nil, err
	}
	doc.pages = pages

	if outlinesObj, ok := catalog.Get("Outlines"); ok {
		if outlinesRef, ok := outlinesObj.(ObjectRef); ok {
			outline, err := buildOutlineTree(r, outlinesRef)
			if err != nil {
				return nil, err
			}
			doc.outline = outline
		}
	}

	if infoObj, ok := trailer.Get("Info"); ok {
		if infoRef, ok := infoObj.(ObjectRef); ok {
			if infoDict, err := r.fetchDict(infoRef.ObjNum, infoRef.GenNum); err == nil {
				doc.info = infoFromDict(infoDict)
				doc.hasInfo = true
			}
		}
	}

	return doc, nil
}

func sortedXrefEntries(table map[uint32]XEntry) []XEntry {
	out := make([]XEntry, 0, len(table))
	for _, e := range table {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjNum < out[j].ObjNum })
	return out
}

// Version returns the document's declared PDF version.
func (d *Document) Version() PDFVersion { return d.version }

// XrefSlice returns every merged xref entry, ordered by object number.
func (d *Document) XrefSlice() []XEntry { return d.xrefList }

// FindXrefIndex returns the index into XrefSlice of the first entry
// satisfying pred.
func (d *Document) FindXrefIndex(pred func(XEntry) bool) (int, bool) {
	for i, e := range d.xrefList {
		if pred(e) {
			return i, true
		}
	}
	return 0, false
}

// ReadObject reads the object at the given index into XrefSlice. A free
// entry yields (nil, false, nil).
func (d *Document) ReadObject(index int) (Object, bool, error) {
	if index < 0 || index >= len(d.xrefList) {
		return nil, false, newErr(KindXrefEntryNotFound, "index out of range")
	}
	entry := d.xrefList[index]
	if !entry.InUse {
		return nil, false, nil
	}
	p := NewParser(d.tok, d.cfg)
	ind, err := p.ParseIndirectAt(int64(entry.Value))
	if err != nil {
		return nil, false, err
	}
	return ind.Inner, true, nil
}

// ReadObjectRef resolves (objNum, genNum) through the merged xref table and
// parses the object it points to.
func (d *Document) ReadObjectRef(objNum uint32, genNum uint16) (Object, bool, error) {
	entry, err := lookupXref(d.xref, objNum, genNum)
	if err != nil {
		return nil, false, err
	}
	if !entry.InUse {
		return nil, false, nil
	}
	p := NewParser(d.tok, d.cfg)
	ind, err := p.ParseIndirectAt(int64(entry.Value))
	if err != nil {
		return nil, false, err
	}
	return ind.Inner, true, nil
}

// PageCount returns the number of leaf pages in the page tree.
func (d *Document) PageCount() int { return d.pages.PageCount() }

// PageIds returns the node ids of every page.
func (d *Document) PageIds() []NodeId { return d.pages.PageIds() }

// GetPage returns the page node for id.
func (d *Document) GetPage(id NodeId) (*PageNode, error) {
	node, ok := d.pages.Node(id)
	if !ok || !node.IsLeaf {
		return nil, pageNotFound(id)
	}
	return node, nil
}

// Outline returns the document's bookmark tree, if present.
func (d *Document) Outline() (*OutlineTreeArena, bool) {
	return d.outline, d.outline != nil
}

// Info returns the document's /Info metadata, if present.
func (d *Document) Info() (DocInfo, bool) { return d.info, d.hasInfo }

// Encrypted reports whether the trailer carries an /Encrypt dictionary,
// either inline or as an indirect reference.
// Detection only: this package never performs decryption (spec §6).
func (d *Document) Encrypted() bool {
	v, ok := d.trailer.Get("Encrypt")
	if !ok {
		return false
	}
	switch v.(type) {
	case Dict, ObjectRef:
		return true
	}
	return false
}

// AccessPermissions decodes the /Encrypt dictionary's /P bit field, or
// reports unrestricted permissions if the document is not encrypted. An
// indirect /Encrypt reference that cannot be read reports no permissions.
func (d *Document) AccessPermissions() AccessPermission {
	v, ok := d.trailer.Get("Encrypt")
	if !ok {
		return unrestrictedPermission()
	}
	switch e := v.(type) {
	case Dict:
		return accessPermissionFrom(e)
	case ObjectRef:
		r := &resolver{tok: d.tok, cfg: d.cfg, xref: d.xref}
		encrypt, err := r.fetchDict(e.ObjNum, e.GenNum)
		if err != nil {
			return AccessPermission{}
		}
		return accessPermissionFrom(encrypt)
	}
	return unrestrictedPermission()
}

// DecodeStream applies s's filter chain under the Document's config.
func (d *Document) DecodeStream(s *Stream) ([]byte, error) {
	return DecodeStream(s, d.cfg)
}

// Close releases the underlying sequence's file handle, if any.
func (d *Document) Close() error {
	if closer, ok := d.seq.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
