package main

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/ukaji3/cellcount-go/pkg/cellcount/parser"
)

// countsFlag collects per-square counts from repeated flags or comma lists.
type countsFlag struct {
	values []int
}

var _ pflag.Value = (*countsFlag)(nil)

func (c *countsFlag) String() string {
	parts := make([]string, len(c.values))
	for i, v := range c.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (c *countsFlag) Set(s string) error {
	values, err := parser.ParseCountList(s)
	if err != nil {
		return err
	}
	c.values = append(c.values, values...)
	return nil
}

func (c *countsFlag) Type() string {
	return "counts"
}
