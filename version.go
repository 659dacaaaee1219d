// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import "fmt"

// PDFVersion is the version declared in a file's `%PDF-X.Y` banner.
type PDFVersion struct {
	Major int
	Minor int
}

func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// supportedVersions enumerates every banner this package accepts, per
// spec §6 ("PDF versions 1.0 through 1.7 and 2.0").
var supportedVersions = map[PDFVersion]bool{
	{1, 0}: true, {1, 1}: true, {1, 2}: true, {1, 3}: true,
	{1, 4}: true, {1, 5}: true, {1, 6}: true, {1, 7}: true,
	{2, 0}: true,
}

const versionBannerPrefix = "%PDF-"

// parseVersion scans the first bannerScanWindow bytes for the `%PDF-X.Y`
// banner, per spec §4.7/§6.
func parseVersion(seq Sequence) (PDFVersion, error) {
	const bannerScanWindow = 1024
	window := bannerScanWindow
	if int64(window) > seq.Size() {
		window = int(seq.Size())
	}
	buf := make([]byte, window)
	if _, err := seq.Seek(0); err != nil {
		return PDFVersion{}, err
	}
	n, err := seq.Read(buf)
	if err != nil {
		return PDFVersion{}, wrapErr(KindIOError, "reading version banner", err)
	}
	buf = buf[:n]

	idx := -1
	for i := 0; i+len(versionBannerPrefix) <= len(buf); i++ {
		if string(buf[i:i+len(versionBannerPrefix)]) == versionBannerPrefix {
			idx = i
			break
		}
	}
	if idx < 0 {
		return PDFVersion{}, ErrNotSupportPDFVersion
	}
	rest := idx + len(versionBannerPrefix)
	if rest+3 > len(buf) {
		return PDFVersion{}, ErrNotSupportPDFVersion
	}
	major, dot, minor := buf[rest], buf[rest+1], buf[rest+2]
	if dot != '.' || major < '0' || major > '9' || minor < '0' || minor > '9' {
		return PDFVersion{}, ErrNotSupportPDFVersion
	}
	v := PDFVersion{Major: int(major - '0'), Minor: int(minor - '0')}
	if !supportedVersions[v] {
		return PDFVersion{}, ErrNotSupportPDFVersion
	}
	return v, nil
}

// ParsePDFVersion parses a "X.Y" string into a PDFVersion, the inverse of
// String, per spec §8's round-trip property.
func ParsePDFVersion(s string) (PDFVersion, error) {
	if len(s) != 3 || s[1] != '.' {
		return PDFVersion{}, newErr(KindNotSupportPDFVersion, s)
	}
	major, minor := s[0], s[2]
	if major < '0' || major > '9' || minor < '0' || minor > '9' {
		return PDFVersion{}, newErr(KindNotSupportPDFVersion, s)
	}
	v := PDFVersion{Major: int(major - '0'), Minor: int(minor - '0')}
	if !supportedVersions[v] {
		return PDFVersion{}, newErr(KindNotSupportPDFVersion, s)
	}
	return v, nil
}
