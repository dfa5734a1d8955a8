package qtl2

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/tavareshugo/atMAGIC/cross"
)

// WriteBundle writes the four tables and the control file under dir, using
// the filenames and conventions the control declares. The genotype tables
// come out recoded against the reference alleles; the maps come out in the
// cross's genome order.
func WriteBundle(dir string, ctl Control, c *cross.Cross) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}
	sep, err := singleRune("separator", ctl.Sep)
	if err != nil {
		return err
	}

	markers := make([]string, len(c.Markers))
	gmap := make([]GmapRow, len(c.Markers))
	pmap := make([]PmapRow, len(c.Markers))
	for j, m := range c.Markers {
		markers[j] = m.Name
		gmap[j] = GmapRow{Marker: m.Name, Chr: m.Chr, Pos: m.CM}
		pmap[j] = PmapRow{Marker: m.Name, Chr: m.Chr, Pos: m.Bp}
	}

	if err := writeGenoTable(filepath.Join(dir, ctl.Geno), ctl, sep, markers, c.Samples, c.EncodedSamples()); err != nil {
		return err
	}
	if err := writeGenoTable(filepath.Join(dir, ctl.FounderGeno), ctl, sep, markers, c.Founders, c.EncodedFounders()); err != nil {
		return err
	}
	if err := writeMapTable(filepath.Join(dir, ctl.Gmap), sep, &gmap); err != nil {
		return err
	}
	if err := writeMapTable(filepath.Join(dir, ctl.Pmap), sep, &pmap); err != nil {
		return err
	}

	return writeControl(filepath.Join(dir, "control.json"), ctl)
}

// ControlFileName returns the path the control gets written to under dir.
func ControlFileName(dir string) string {
	return filepath.Join(dir, "control.json")
}

func writeGenoTable(path string, ctl Control, sep rune, markers, ids []string, codes [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if ctl.Description != "" && ctl.CommentChar != "" {
		fmt.Fprintf(f, "%s %s\n", ctl.CommentChar, ctl.Description)
	}

	cw := csv.NewWriter(f)
	cw.Comma = sep
	if err := cw.Write(append([]string{"ID"}, markers...)); err != nil {
		return pfx.Err(err)
	}
	for i, id := range ids {
		if err := cw.Write(append([]string{id}, codes[i]...)); err != nil {
			return pfx.Err(err)
		}
	}
	cw.Flush()

	return pfx.Err(cw.Error())
}

func writeMapTable(path string, sep rune, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = sep

	return pfx.Err(gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)))
}

func writeControl(path string, ctl Control) error {
	out, err := json.MarshalIndent(ctl, "", "    ")
	if err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(path, append(out, '\n'), 0o644))
}

func singleRune(what, v string) (rune, error) {
	if len(v) != 1 {
		return 0, fmt.Errorf("%s %q is not a single character", what, v)
	}

	return rune(v[0]), nil
}
