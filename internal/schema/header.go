// Package schema finds the header row of a loosely structured sheet and
// maps its columns onto logical roles.
package schema

import (
	"fmt"
	"strings"

	"payrecon/domain/core"
	"payrecon/domain/recon"
	"payrecon/internal/normalize"
)

// DefaultScanRows bounds how many leading rows are searched for a header
const DefaultScanRows = 5

// MatchMode controls how a cell is compared with a key label variant
type MatchMode int

const (
	// MatchExact requires the normalized cell to equal a variant
	MatchExact MatchMode = iota
	// MatchContains accepts a normalized cell containing a variant
	MatchContains
)

// ParseMatchMode converts "exact" or "contains" to a MatchMode
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	default:
		return MatchExact, fmt.Errorf("unknown header match mode %q", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// LocateOptions configures header detection
type LocateOptions struct {
	Sheet   string // for error reporting only
	MaxRows int
	Mode    MatchMode
	// Hint is a fixed skip-row count tried before scanning; negative disables it.
	Hint int
}

// LocateHeader returns the index of the first row inside the scan window
// containing a key label variant. When opts.Hint names a qualifying row it
// wins without a scan.
func LocateHeader(grid recon.Grid, keyVariants []string, opts LocateOptions) (int, error) {
	candidates := HeaderCandidates(grid, keyVariants, opts)
	if len(candidates) == 0 {
		return -1, &core.HeaderNotFoundError{
			Sheet:    opts.Sheet,
			Window:   window(opts),
			Variants: keyVariants,
		}
	}
	return candidates[0], nil
}

// HeaderCandidates lists every qualifying row in the order it should be
// tried: the hint first when it qualifies, then the scan window top-down.
func HeaderCandidates(grid recon.Grid, keyVariants []string, opts LocateOptions) []int {
	variants := normalize.NormalizeAll(keyVariants)
	var out []int

	if opts.Hint >= 0 && opts.Hint < len(grid) && rowMatches(grid[opts.Hint], variants, opts.Mode) {
		out = append(out, opts.Hint)
	}

	limit := window(opts)
	if limit > len(grid) {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		if i == opts.Hint && len(out) > 0 {
			continue
		}
		if rowMatches(grid[i], variants, opts.Mode) {
			out = append(out, i)
		}
	}
	return out
}

func window(opts LocateOptions) int {
	if opts.MaxRows <= 0 {
		return DefaultScanRows
	}
	return opts.MaxRows
}

func rowMatches(row []string, variants []string, mode MatchMode) bool {
	for _, cell := range row {
		label := normalize.Normalize(cell)
		if label == "" {
			continue
		}
		for _, v := range variants {
			if v == "" {
				continue
			}
			if label == v || (mode == MatchContains && strings.Contains(label, v)) {
				return true
			}
		}
	}
	return false
}
