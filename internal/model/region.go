package model

import (
	"errors"
	"fmt"
	"strings"
)

// Region is an upper-case ISO country code used to partition trend feeds.
type Region string

// ErrUnknownRegion is returned when a region code is not supported.
var ErrUnknownRegion = errors.New("unknown region")

// KnownRegions lists every region the trend adapter can query, in display order.
var KnownRegions = []Region{"US", "GB", "CA", "AU", "IE", "DE", "FR", "NL", "SE"}

// DefaultRegions is used when a request does not name any regions.
var DefaultRegions = []Region{"US", "GB", "CA", "AU", "DE"}

// Valid reports whether r is one of KnownRegions.
func (r Region) Valid() bool {
	for _, k := range KnownRegions {
		if r == k {
			return true
		}
	}
	return false
}

// ParseRegions parses a comma-separated region list. Entries are trimmed and
// upper-cased and empty entries are dropped. An empty input (or one with
// only separators) yields a copy of DefaultRegions.
func ParseRegions(s string) ([]Region, error) {
	var out []Region
	var unknown []string
	for _, part := range strings.Split(s, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		r := Region(code)
		if !r.Valid() {
			unknown = append(unknown, code)
			continue
		}
		out = append(out, r)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, strings.Join(unknown, ","))
	}
	if len(out) == 0 {
		return append([]Region(nil), DefaultRegions...), nil
	}
	return out, nil
}

// RegionStrings converts regions to plain strings.
func RegionStrings(regions []Region) []string {
	out := make([]string, len(regions))
	for i, r := range regions {
		out[i] = string(r)
	}
	return out
}
