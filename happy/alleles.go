package happy

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// The .alleles grammar is rigid: after a two-line preamble, every marker
// occupies exactly four lines in a fixed order. The parser walks that cycle
// explicitly so that a malformed file fails at the first offending line with
// a message naming what was expected there.
type allelesState int

const (
	expectMarker allelesState = iota
	expectMissing
	expectAllele1
	expectAllele2
)

// ReadAlleles parses the .alleles file at path.
func ReadAlleles(path string) (*AllelesFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ParseAlleles(f, path)
}

// ParseAlleles parses a .alleles stream. name is used in diagnostics only.
func ParseAlleles(r io.Reader, name string) (*AllelesFile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &AllelesFile{Name: name}

	// Line 1: `markers <M> strains <S>` declares the counts everything
	// after it is validated against.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, pfx.Err(err)
		}
		return nil, fmt.Errorf("%s: empty file, expected a `markers <M> strains <S>` header", name)
	}
	declaredMarkers, declaredStrains, err := parseAllelesHeader(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("%s: line 1: %w", name, err)
	}

	// Line 2: the strain names, one per declared strain.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, pfx.Err(err)
		}
		return nil, fmt.Errorf("%s: missing strain-name line", name)
	}
	out.Strains = strings.Fields(sc.Text())
	if len(out.Strains) != declaredStrains {
		return nil, fmt.Errorf("%s: line 2: found %d strain names, header declared %d", name, len(out.Strains), declaredStrains)
	}

	state := expectMarker
	var cur AlleleBlock
	lineNum := 2
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			if state != expectMarker {
				return nil, fmt.Errorf("%s: line %d: blank line inside the 4-line block for marker %s", name, lineNum, cur.Info.Name)
			}
			continue
		}

		switch state {
		case expectMarker:
			info, err := parseMarkerLine(line)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w", name, lineNum, err)
			}
			cur = AlleleBlock{Info: info}
			state = expectMissing
		case expectMissing:
			row, err := parseProbRow(line, declaredStrains)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d (marker %s): %w", name, lineNum, cur.Info.Name, err)
			}
			if row.Allele != MissingCall {
				return nil, fmt.Errorf("%s: line %d: marker %s: first allele row is %q, expected the NA (missing) row", name, lineNum, cur.Info.Name, row.Allele)
			}
			cur.Missing = row
			state = expectAllele1
		case expectAllele1:
			row, err := parseProbRow(line, declaredStrains)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d (marker %s): %w", name, lineNum, cur.Info.Name, err)
			}
			cur.Allele1 = row
			state = expectAllele2
		case expectAllele2:
			row, err := parseProbRow(line, declaredStrains)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d (marker %s): %w", name, lineNum, cur.Info.Name, err)
			}
			cur.Allele2 = row
			out.Blocks = append(out.Blocks, cur)
			state = expectMarker
		}
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	if state != expectMarker {
		return nil, fmt.Errorf("%s: truncated: file ends inside the 4-line block for marker %s", name, cur.Info.Name)
	}
	if len(out.Blocks) != declaredMarkers {
		return nil, fmt.Errorf("%s: found %d marker blocks, header declared %d", name, len(out.Blocks), declaredMarkers)
	}

	return out, nil
}

func parseAllelesHeader(line string) (markers, strains int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "markers" || fields[2] != "strains" {
		return 0, 0, fmt.Errorf("malformed header %q, expected `markers <M> strains <S>`", line)
	}
	markers, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("marker count %q is not an integer", fields[1])
	}
	strains, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("strain count %q is not an integer", fields[3])
	}

	return markers, strains, nil
}

func parseMarkerLine(line string) (MarkerInfo, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[0] != "marker" {
		return MarkerInfo{}, fmt.Errorf("malformed marker line %q, expected `marker <name> <block> <chr> <cM>`", line)
	}
	cm, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return MarkerInfo{}, fmt.Errorf("marker %s: map position %q is not numeric", fields[1], fields[4])
	}

	return MarkerInfo{
		Name:  fields[1],
		Block: fields[2],
		Chr:   fields[3],
		CM:    cm,
		cmRaw: fields[4],
	}, nil
}

func parseProbRow(line string, nStrains int) (ProbRow, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "allele" {
		return ProbRow{}, fmt.Errorf("malformed allele line %q", line)
	}
	probs := fields[2:]
	if len(probs) != nStrains {
		return ProbRow{}, fmt.Errorf("allele %s row has %d probabilities, expected %d", fields[1], len(probs), nStrains)
	}

	row := ProbRow{Allele: fields[1], P: make([]float64, nStrains)}
	for i, p := range probs {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return ProbRow{}, fmt.Errorf("allele %s row: probability %q is not numeric", fields[1], p)
		}
		row.P[i] = v
	}

	return row, nil
}

// UninformativeProb is the flat probability the published files assign every
// strain when a marker's missing row says nothing: 1/nStrains rounded to the
// files' three-decimal precision (0.053 for the 19 MAGIC founders).
func UninformativeProb(nStrains int) float64 {
	return math.Round(1000/float64(nStrains)) / 1000
}

// UninformativeMissing reports whether the block's missing row is the flat
// 1/nStrains placeholder rather than a genuine per-strain estimate.
func (b AlleleBlock) UninformativeMissing() bool {
	if len(b.Missing.P) == 0 {
		return false
	}
	u := UninformativeProb(len(b.Missing.P))
	for _, p := range b.Missing.P {
		if p != u {
			return false
		}
	}

	return true
}
