// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"math"
	"regexp"
	"strconv"
)

// PercentScale is the total used for ratios parsed from a percentage.
// One unit is a tenth of a percent.
const PercentScale = 1000

var (
	fractionPattern = regexp.MustCompile(`\b(\d{1,19})\s*/\s*(\d{1,19})\b`)
	percentPattern  = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
)

// Ratio is a completed/total pair where Completed <= Total and Total > 0.
type Ratio struct {
	Completed uint64
	Total     uint64
}

// ParseRatio returns the right-most progress figure in line.
// Fractions with a zero total or completed > total are ignored, as are percentages over 100.
func ParseRatio(line string) (Ratio, bool) {
	var (
		best  Ratio
		pos   = -1
		found bool
	)

	for _, m := range fractionPattern.FindAllStringSubmatchIndex(line, -1) {
		c, err1 := strconv.ParseUint(line[m[2]:m[3]], 10, 64)
		t, err2 := strconv.ParseUint(line[m[4]:m[5]], 10, 64)

		if err1 != nil || err2 != nil || t == 0 || c > t {
			continue
		}

		if m[0] > pos {
			best, pos, found = Ratio{Completed: c, Total: t}, m[0], true
		}
	}

	for _, m := range percentPattern.FindAllStringSubmatchIndex(line, -1) {
		p, err := strconv.ParseFloat(line[m[2]:m[3]], 64)
		if err != nil || p > 100 {
			continue
		}

		if m[0] > pos {
			best = Ratio{Completed: uint64(math.Round(p * PercentScale / 100)), Total: PercentScale}
			pos, found = m[0], true
		}
	}

	return best, found
}
