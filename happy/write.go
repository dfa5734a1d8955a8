package happy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// WriteAlleles writes f back out in the happy .alleles layout: the count
// header, the strain-name line, and one four-line block per marker.
func WriteAlleles(w io.Writer, f *AllelesFile) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "markers %d strains %d\n", len(f.Blocks), len(f.Strains))
	fmt.Fprintln(bw, strings.Join(f.Strains, "\t"))
	for _, b := range f.Blocks {
		fmt.Fprintf(bw, "marker %s %s %s %s\n", b.Info.Name, b.Info.Block, b.Info.Chr, b.Info.cmText())
		writeProbRow(bw, b.Missing)
		writeProbRow(bw, b.Allele1)
		writeProbRow(bw, b.Allele2)
	}

	return pfx.Err(bw.Flush())
}

func writeProbRow(w io.Writer, row ProbRow) {
	fmt.Fprintf(w, "allele\t%s", row.Allele)
	for _, p := range row.P {
		fmt.Fprintf(w, "\t%s", formatProb(p))
	}
	fmt.Fprintln(w)
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

func (m MarkerInfo) cmText() string {
	if m.cmRaw != "" {
		return m.cmRaw
	}

	return strconv.FormatFloat(m.CM, 'g', -1, 64)
}

// WriteData writes g back out in the happy .data layout: sample id, five
// placeholder metadata columns, then each call twice. The published files
// carry pedigree-style metadata there; it is discarded on parse, so zeros
// stand in on the way out.
func WriteData(w io.Writer, g *GenoFile) error {
	bw := bufio.NewWriter(w)

	for i, s := range g.Samples {
		bw.WriteString(s)
		for k := 0; k < dataMetaColumns; k++ {
			bw.WriteString("\t0")
		}
		for _, call := range g.Calls[i] {
			bw.WriteString("\t")
			bw.WriteString(call)
			bw.WriteString("\t")
			bw.WriteString(call)
		}
		bw.WriteString("\n")
	}

	return pfx.Err(bw.Flush())
}

// WriteMap writes rows back out in the tab-delimited .map layout.
func WriteMap(w io.Writer, rows []MapRow) error {
	bw := bufio.NewWriter(w)

	for _, r := range rows {
		fmt.Fprintf(bw, "%s\t%s\t%s\t%d\t%d\n", r.Marker, r.Aux1, r.Aux2, r.Chr, r.Bp)
	}

	return pfx.Err(bw.Flush())
}
