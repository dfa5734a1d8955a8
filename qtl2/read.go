package qtl2

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	atmagic "github.com/tavareshugo/atMAGIC"
)

// Table is a genotype table read back from disk: one row of categorical
// codes per individual, one column per marker.
type Table struct {
	IDs     []string
	Markers []string
	Codes   [][]string
}

// Bundle is a written bundle read back in full.
type Bundle struct {
	Dir         string
	Control     Control
	Geno        *Table
	FounderGeno *Table
	Gmap        []GmapRow
	Pmap        []PmapRow
}

// ReadBundle loads the control file at controlPath and the four tables it
// names, resolved relative to the control's directory. When the control
// does not declare a separator, the genotype table's is sniffed.
func ReadBundle(controlPath string) (*Bundle, error) {
	raw, err := os.ReadFile(controlPath)
	if err != nil {
		return nil, pfx.Err(err)
	}

	b := &Bundle{Dir: filepath.Dir(controlPath)}
	if err := json.Unmarshal(raw, &b.Control); err != nil {
		return nil, fmt.Errorf("%s: %w", controlPath, err)
	}
	for _, name := range []struct{ key, val string }{
		{"geno", b.Control.Geno},
		{"founder_geno", b.Control.FounderGeno},
		{"gmap", b.Control.Gmap},
		{"pmap", b.Control.Pmap},
	} {
		if name.val == "" {
			return nil, fmt.Errorf("%s: control file names no %s table", controlPath, name.key)
		}
	}

	var comment rune
	if b.Control.CommentChar != "" {
		if comment, err = singleRune("comment character", b.Control.CommentChar); err != nil {
			return nil, err
		}
	}

	var sep rune
	if b.Control.Sep == "" {
		if sep, err = sniffSep(filepath.Join(b.Dir, b.Control.Geno), b.Control.CommentChar); err != nil {
			return nil, err
		}
	} else if sep, err = singleRune("separator", b.Control.Sep); err != nil {
		return nil, err
	}

	if b.Geno, err = readGenoTable(filepath.Join(b.Dir, b.Control.Geno), sep, comment); err != nil {
		return nil, err
	}
	if b.FounderGeno, err = readGenoTable(filepath.Join(b.Dir, b.Control.FounderGeno), sep, comment); err != nil {
		return nil, err
	}
	if b.Gmap, err = readGmap(filepath.Join(b.Dir, b.Control.Gmap), sep, comment); err != nil {
		return nil, err
	}
	if b.Pmap, err = readPmap(filepath.Join(b.Dir, b.Control.Pmap), sep, comment); err != nil {
		return nil, err
	}

	return b, nil
}

// sniffSep guesses a table's delimiter from its first 64KB. Comment lines
// are dropped first so their text cannot skew the tally.
func sniffSep(path, comment string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return 0, pfx.Err(err)
	}

	sample := buf[:n]
	if comment != "" {
		var kept [][]byte
		for _, line := range bytes.Split(sample, []byte("\n")) {
			if !bytes.HasPrefix(line, []byte(comment)) {
				kept = append(kept, line)
			}
		}
		sample = bytes.Join(kept, []byte("\n"))
	}

	return atmagic.DetermineDelimiter(sample), nil
}

func readGenoTable(path string, sep, comment rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = sep
	cr.Comment = comment

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: expected a header row and at least one individual", path)
	}

	t := &Table{Markers: records[0][1:]}
	for _, rec := range records[1:] {
		t.IDs = append(t.IDs, rec[0])
		t.Codes = append(t.Codes, rec[1:])
	}

	return t, nil
}

func readGmap(path string, sep, comment rune) ([]GmapRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = sep
	cr.Comment = comment

	var rows []GmapRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

func readPmap(path string, sep, comment rune) ([]PmapRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = sep
	cr.Comment = comment

	var rows []PmapRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}
