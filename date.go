// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package pdfdoc

import (
	"strconv"
	"time"
)

// ParseDate decodes a PDF date string of the form
// `D:YYYYMMDDHHmmSS[Z|+HH'mm'|-HH'mm']`, per spec §9. Missing trailing
// components default to the unit's minimum (month/day = 1; hour/minute/
// second = 0); an absent timezone indicator means UTC.
func ParseDate(text string) (time.Time, error) {
	if len(text) < 2 || text[:2] != "D:" || len(text) < 6 {
		return time.Time{}, newErr(KindIllegalDateFormat, text)
	}
	year, err := strconv.Atoi(text[2:6])
	if err != nil {
		return time.Time{}, wrapErr(KindIllegalDateFormat, text, err)
	}
	month := datePart(text, 6, 8, 1)
	day := datePart(text, 8, 10, 1)
	hour := datePart(text, 10, 12, 0)
	minute := datePart(text, 12, 14, 0)
	second := datePart(text, 14, 16, 0)

	loc := time.UTC
	if len(text) >= 17 {
		sign := text[16]
		switch sign {
		case 'Z':
			loc = time.UTC
		case '+', '-':
			if len(text) < 19 {
				return time.Time{}, newErr(KindIllegalDateFormat, text)
			}
			tzHour, err := strconv.Atoi(text[17:19])
			if err != nil {
				return time.Time{}, wrapErr(KindIllegalDateFormat, text, err)
			}
			tzMinute := 0
			if len(text) > 19 {
				start := 19
				if start < len(text) && text[start] == '\'' {
					start++
				}
				end := start + 2
				if end > len(text) {
					return time.Time{}, newErr(KindIllegalDateFormat, text)
				}
				tzMinute, err = strconv.Atoi(text[start:end])
				if err != nil {
					return time.Time{}, wrapErr(KindIllegalDateFormat, text, err)
				}
			}
			offsetSeconds := (tzHour*3600 + tzMinute*60)
			if sign == '-' {
				offsetSeconds = -offsetSeconds
			}
			loc = time.FixedZone("", offsetSeconds)
		default:
			return time.Time{}, newErr(KindIllegalDateFormat, text)
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 60 {
		return time.Time{}, newErr(KindIllegalDateFormat, text)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), nil
}

func datePart(text string, start, end, def int) int {
	if len(text) < end {
		return def
	}
	v, err := strconv.Atoi(text[start:end])
	if err != nil {
		return def
	}
	return v
}
