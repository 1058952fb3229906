// Package parser turns raw count entries into calculation inputs.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/cellcount-go/pkg/cellcount/models"
)

// ParseCountList splits a comma or whitespace separated list of counts.
func ParseCountList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})

	values := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := parseCount(f)
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, nil
}

// ParseCounts pairs live and dead counts square by square.
// Dead counts may be shorter than live counts; missing entries are zero.
func ParseCounts(live, dead []int) ([]models.CountInput, error) {
	if len(dead) > len(live) {
		return nil, fmt.Errorf("%d dead counts given for %d squares", len(dead), len(live))
	}

	counts := make([]models.CountInput, len(live))
	for i, l := range live {
		counts[i].Live = l
		if i < len(dead) {
			counts[i].Dead = dead[i]
		}
	}
	return counts, nil
}

// parseCount parses a single non-negative cell count.
// Integral floats such as "50.0" are accepted since spreadsheets store them that way.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i < 0 {
			return 0, fmt.Errorf("invalid count %q: must not be negative", s)
		}
		return int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: not a number", s)
	}
	if f < 0 || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid count %q: must be a whole non-negative number", s)
	}
	return int(f), nil
}
