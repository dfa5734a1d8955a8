package happy

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
)

// ReadMap parses the .map file at path.
func ReadMap(path string) ([]MapRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ParseMap(f, path)
}

// ParseMap parses a tab-delimited .map stream with five columns per row:
// marker name, two opaque text fields, chromosome, and basepair position.
// name is used in diagnostics only.
func ParseMap(r io.Reader, name string) ([]MapRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 5

	var out []MapRow
	for lineNum := 1; ; lineNum++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		chr, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: marker %s: chromosome %q is not an integer", name, lineNum, rec[0], rec[3])
		}
		bp, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: marker %s: basepair position %q is not an integer", name, lineNum, rec[0], rec[4])
		}

		out = append(out, MapRow{
			Marker: rec[0],
			Aux1:   rec[1],
			Aux2:   rec[2],
			Chr:    chr,
			Bp:     bp,
		})
	}
	if len(out) == 0 {
		return nil, pfx.Err(fmt.Errorf("%s: no map rows", name))
	}

	return out, nil
}
