package happy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// A .data row is: sample id, five pedigree-style metadata columns, then two
// columns per marker. MAGIC lines are inbred, so the two columns of a pair
// repeat the same call; only the first is kept.
const dataMetaColumns = 5

// ReadData parses the .data file at path. markers names the file's columns,
// in order; the .data format itself carries no marker names, so they come
// from the .alleles file of the same chromosome.
func ReadData(path string, markers []string) (*GenoFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ParseData(f, path, markers)
}

// ParseData parses a .data stream. name is used in diagnostics only.
func ParseData(r io.Reader, name string, markers []string) (*GenoFile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	out := &GenoFile{Name: name, Markers: markers}
	wantCols := 1 + dataMetaColumns + 2*len(markers)
	seen := make(map[string]struct{})
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != wantCols {
			return nil, fmt.Errorf("%s: line %d: found %d columns, expected %d (1 id + %d metadata + 2 per marker for %d markers)",
				name, lineNum, len(fields), wantCols, dataMetaColumns, len(markers))
		}

		sample := fields[0]
		if _, ok := seen[sample]; ok {
			return nil, fmt.Errorf("%s: line %d: duplicate sample id %s", name, lineNum, sample)
		}
		seen[sample] = struct{}{}

		calls := make([]string, len(markers))
		for j := range markers {
			calls[j] = normalizeCall(fields[1+dataMetaColumns+2*j])
		}
		out.Samples = append(out.Samples, sample)
		out.Calls = append(out.Calls, calls)
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// normalizeCall folds the spellings of a missing genotype into MissingCall.
func normalizeCall(v string) string {
	switch v {
	case "", "-", MissingCall:
		return MissingCall
	}

	return v
}
