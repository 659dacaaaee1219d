// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"bytes"
	"fmt"
)

// pdfBuilder assembles a hand-rolled PDF byte-for-byte, tracking object
// offsets as it writes them so the xref table it emits is always accurate.
// This plays the role the teacher's testdata fixtures play, except the
// teacher ships fixtures as files on disk; spec.md's scenarios are small
// enough to construct in-memory instead.
type pdfBuilder struct {
	buf     bytes.Buffer
	offsets map[int]int64
}

func newPDFBuilder(version string) *pdfBuilder {
	b := &pdfBuilder{offsets: make(map[int]int64)}
	fmt.Fprintf(&b.buf, "%%PDF-%s\n", version)
	return b
}

// obj writes "N 0 obj\n<body>\nendobj\n", recording N's offset.
func (b *pdfBuilder) obj(num int, body string) {
	b.offsets[num] = int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

// stream writes an indirect stream object with an explicit /Length.
func (b *pdfBuilder) stream(num int, dictBody, content string) {
	b.offsets[num] = int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		num, dictBody, len(content), content)
}

// xrefAndTrailer appends the xref table for object numbers 1..maxObj
// (skipping any never written via obj/stream, which become free entries)
// plus the trailer/startxref footer, and returns the full PDF bytes.
func (b *pdfBuilder) xrefAndTrailer(maxObj int, rootObj int, prev int64, extraTrailer string) []byte {
	xrefOffset := int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", maxObj+1)
	fmt.Fprintf(&b.buf, "0000000000 65535 f \n")
	for n := 1; n <= maxObj; n++ {
		if off, ok := b.offsets[n]; ok {
			fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
		} else {
			fmt.Fprintf(&b.buf, "0000000000 00000 f \n")
		}
	}
	b.buf.WriteString("trailer\n")
	fmt.Fprintf(&b.buf, "<< /Size %d /Root %d 0 R", maxObj+1, rootObj)
	if prev > 0 {
		fmt.Fprintf(&b.buf, " /Prev %d", prev)
	}
	if extraTrailer != "" {
		b.buf.WriteString(" " + extraTrailer)
	}
	b.buf.WriteString(" >>\n")
	fmt.Fprintf(&b.buf, "startxref\n%d\n%%%%EOF", xrefOffset)
	return b.buf.Bytes()
}

// xrefAndTrailerWithoutRoot writes a trailer missing /Root, for exercising
// NewDocument's required-key failure path.
func (b *pdfBuilder) xrefAndTrailerWithoutRoot(maxObj int) []byte {
	xrefOffset := int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", maxObj+1)
	fmt.Fprintf(&b.buf, "0000000000 65535 f \n")
	for n := 1; n <= maxObj; n++ {
		if off, ok := b.offsets[n]; ok {
			fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
		} else {
			fmt.Fprintf(&b.buf, "0000000000 00000 f \n")
		}
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d >>\n", maxObj+1)
	fmt.Fprintf(&b.buf, "startxref\n%d\n%%%%EOF", xrefOffset)
	return b.buf.Bytes()
}

// xrefAndTrailerInfo is xrefAndTrailer plus an /Info entry in the trailer.
func (b *pdfBuilder) xrefAndTrailerInfo(maxObj, rootObj, infoObj int) []byte {
	return b.xrefAndTrailer(maxObj, rootObj, 0, fmt.Sprintf("/Info %d 0 R", infoObj))
}

// minimalOnePagePDF builds spec §8 scenario 1: a 5-object PDF 1.4 document
// with one page and one uncompressed content stream.
func minimalOnePagePDF() []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>")
	b.stream(4, "", "BT /F1 12 Tf 72 720 Td (Hello) Tj ET")
	b.obj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	return b.xrefAndTrailer(5, 1, 0, "")
}

// twoPagePDF builds a two-leaf page tree with leaves in a known left-to-
// right order (object 3 then object 4), for asserting PageIds ordering.
func twoPagePDF() []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>")
	b.obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.obj(4, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	return b.xrefAndTrailer(4, 1, 0, "")
}

// incrementalUpdatePDF builds spec §8 scenario 2: an original one-page
// document followed by an incremental update that rewrites the page tree
// to add a second page. Opening the result must see page_count() == 2 and
// the updated (not the original) /Pages object.
func incrementalUpdatePDF() []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	origXrefOffset := int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "xref\n0 4\n0000000000 65535 f \n")
	for n := 1; n <= 3; n++ {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", b.offsets[n])
	}
	b.buf.WriteString("trailer\n<< /Size 4 /Root 1 0 R >>\n")
	fmt.Fprintf(&b.buf, "startxref\n%d\n%%%%EOF\n", origXrefOffset)

	// Incremental update: new page object 4, rewritten Pages object 2.
	b.obj(4, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.offsets[2] = int64(b.buf.Len())
	fmt.Fprintf(&b.buf, "2 0 obj\n<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>\nendobj\n")
	return b.xrefAndTrailer(4, 1, origXrefOffset, "")
}

// outlinePDF builds a catalog with a two-entry outline chain: a hex
// UTF-16BE title ("Hi") followed by a literal PDFDoc-encoded title
// ("Chapter 1"), matching spec §8 scenario 6.
func outlinePDF() []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R /Outlines 10 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.obj(10, "<< /Type /Outlines /First 11 0 R /Last 12 0 R /Count 2 >>")
	b.obj(11, `<< /Title <FEFF00480069> /Parent 10 0 R /Next 12 0 R >>`)
	b.obj(12, `<< /Title (Chapter\ 1) /Parent 10 0 R /Prev 11 0 R >>`)
	return b.xrefAndTrailer(12, 1, 0, "")
}

// cyclicPagesPDF builds a /Pages node that lists itself as a /Kids entry,
// exercising the cycle-detection guard in buildPageNode.
func cyclicPagesPDF() []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [2 0 R] /Count 1 >>")
	return b.xrefAndTrailer(2, 1, 0, "")
}

// encryptedPDF builds a minimal document whose trailer carries /Encrypt,
// for exercising Document.Encrypted()/AccessPermissions().
func encryptedPDF(pValue int32) []byte {
	b := newPDFBuilder("1.4")
	b.obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	b.obj(4, fmt.Sprintf("<< /Filter /Standard /V 1 /R 2 /P %d >>", pValue))
	return b.xrefAndTrailer(4, 1, 0, "/Encrypt 4 0 R")
}
