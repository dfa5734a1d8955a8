package happy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// FileSet is one chromosome's trio of source files, grouped by shared stem.
type FileSet struct {
	Stem    string
	Chr     int // first integer in the stem; 0 if none
	Alleles string
	Data    string
	Map     string
}

// DiscoverSets finds the per-chromosome file trios under dir: every
// *.alleles file must have .data and .map siblings with the same stem. Sets
// come back in chromosome order.
func DiscoverSets(dir string) ([]FileSet, error) {
	alleles, err := filepath.Glob(filepath.Join(dir, "*.alleles"))
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(alleles) == 0 {
		return nil, fmt.Errorf("no *.alleles files under %s", dir)
	}

	sets := make([]FileSet, 0, len(alleles))
	for _, a := range alleles {
		stem := strings.TrimSuffix(a, ".alleles")
		set := FileSet{
			Stem:    filepath.Base(stem),
			Chr:     firstInt(filepath.Base(stem)),
			Alleles: a,
			Data:    stem + ".data",
			Map:     stem + ".map",
		}
		if _, err := os.Stat(set.Data); err != nil {
			return nil, fmt.Errorf("%s has no .data sibling: %w", a, err)
		}
		if _, err := os.Stat(set.Map); err != nil {
			return nil, fmt.Errorf("%s has no .map sibling: %w", a, err)
		}
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Chr != sets[j].Chr {
			return sets[i].Chr < sets[j].Chr
		}
		return sets[i].Stem < sets[j].Stem
	})

	return sets, nil
}

// firstInt returns the first run of digits in s as an integer, or 0 if s
// contains none. The published files are named chr1.MAGIC... through
// chr5.MAGIC..., so this is the chromosome number.
func firstInt(s string) int {
	n, found := 0, false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}

	return n
}
