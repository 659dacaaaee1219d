// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import "time"

// DocInfo is the document information dictionary (/Info), trimmed of the
// XMP-packet fields the teacher's Meta additionally carries — no
// SPEC_FULL.md component parses XMP, so only the classic Info entries
// survive here.
type DocInfo struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate string
	ModDate      string
}

// CreationTime parses CreationDate with ParseDate, ignoring a malformed or
// absent value rather than failing Info() outright.
func (i DocInfo) CreationTime() (time.Time, bool) {
	if i.CreationDate == "" {
		return time.Time{}, false
	}
	t, err := ParseDate(i.CreationDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func textOf(d Dict, key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(PDFString)
	if !ok {
		return ""
	}
	return s.Text()
}

func infoFromDict(d Dict) DocInfo {
	return DocInfo{
		Title:        textOf(d, "Title"),
		Author:       textOf(d, "Author"),
		Subject:      textOf(d, "Subject"),
		Keywords:     textOf(d, "Keywords"),
		Creator:      textOf(d, "Creator"),
		Producer:     textOf(d, "Producer"),
		CreationDate: textOf(d, "CreationDate"),
		ModDate:      textOf(d, "ModDate"),
	}
}

// AccessPermission reports which operations the /Encrypt dictionary's /P
// bit field grants, per ISO 32000-1 §7.6.3. Detection only: this package
// never decrypts content.
type AccessPermission struct {
	CanPrint                bool
	CanPrintFaithful        bool
	CanModify               bool
	ExtractContent          bool
	ModifyAnnotations       bool
	FillInForm              bool
	ExtractForAccessibility bool
	AssembleDocument        bool
}

func unrestrictedPermission() AccessPermission {
	return AccessPermission{
		CanPrint: true, CanPrintFaithful: true, CanModify: true,
		ExtractContent: true, ModifyAnnotations: true, FillInForm: true,
		ExtractForAccessibility: true, AssembleDocument: true,
	}
}

func accessPermissionFrom(encrypt Dict) AccessPermission {
	if encrypt == nil {
		return unrestrictedPermission()
	}
	pObj, ok := encrypt.Get("P")
	if !ok {
		return AccessPermission{}
	}
	p := uint32(int32(intOf(pObj, 0)))
	var ap AccessPermission
	ap.CanPrint = p&(1<<2) != 0
	ap.CanModify = p&(1<<3) != 0
	ap.ExtractContent = p&(1<<4) != 0
	ap.ModifyAnnotations = p&(1<<5) != 0
	ap.FillInForm = p&(1<<8) != 0 || ap.ModifyAnnotations
	ap.ExtractForAccessibility = p&(1<<9) != 0
	ap.AssembleDocument = p&(1<<10) != 0
	ap.CanPrintFaithful = p&(1<<11) != 0 || ap.CanPrint
	return ap
}
