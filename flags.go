package tnpeff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StringsFlag is a repeatable string flag. The first Set replaces the
// default values.
type StringsFlag struct {
	Values  []string
	beenSet bool
}

func (f *StringsFlag) Set(v string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}
	f.Values = append(f.Values, v)
	return nil
}

func (f *StringsFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.Values, ",")
}

// BinningFlags collects binnings given as "scenario=e0,e1,...".
type BinningFlags map[string][]float64

func (f BinningFlags) Set(v string) error {
	name, list, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return errors.Errorf("binning %q is not of the form scenario=e0,e1,...", v)
	}

	var edges []float64
	for _, s := range strings.Split(list, ",") {
		e, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.Wrapf(err, "binning %s", name)
		}
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			return errors.Errorf("binning %s is not strictly increasing at %v", name, e)
		}
		edges = append(edges, e)
	}
	if len(edges) < 2 {
		return errors.Errorf("binning %s needs at least two edges", name)
	}
	f[name] = edges
	return nil
}

func (f BinningFlags) String() string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, f[name])
	}
	return strings.Join(parts, " ")
}
