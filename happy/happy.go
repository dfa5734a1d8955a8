// Package happy reads and writes the happy-format genotype files that the
// MAGIC resource is published in: per chromosome, a .alleles file with
// founder-allele probabilities, a .data file with one genotype row per line,
// and a .map file with physical marker coordinates.
package happy

// MissingCall is the canonical in-memory spelling of a missing genotype.
// The published files use both "NA" and "-".
const MissingCall = "NA"

// MarkerInfo is one `marker` header line of a .alleles file.
type MarkerInfo struct {
	Name  string
	Block string // undocumented literal ("3" throughout the published files), carried opaquely
	Chr   string
	CM    float64
	cmRaw string // verbatim map-position token, so writers can round-trip it
}

// ProbRow is one `allele` line: a symbol and one probability per strain.
type ProbRow struct {
	Allele string
	P      []float64
}

// AlleleBlock is the four-line unit describing one marker: its header, the
// missing-probability row, and the two allele-probability rows.
type AlleleBlock struct {
	Info    MarkerInfo
	Missing ProbRow
	Allele1 ProbRow
	Allele2 ProbRow
}

// AllelesFile is a parsed .alleles file, or several of them merged in
// chromosome order.
type AllelesFile struct {
	Name    string // source, for diagnostics
	Strains []string
	Blocks  []AlleleBlock
}

// MarkerNames returns the marker names in file order. The .data files carry
// no marker names of their own; this order is what names their columns.
func (f *AllelesFile) MarkerNames() []string {
	names := make([]string, len(f.Blocks))
	for i, b := range f.Blocks {
		names[i] = b.Info.Name
	}

	return names
}

// GenoFile is a parsed .data file, or several of them outer-joined on
// sample id. Calls is indexed [sample][marker].
type GenoFile struct {
	Name    string
	Markers []string
	Samples []string
	Calls   [][]string
}

// MapRow is one line of a .map file. The second and third columns are
// undocumented in the published data and carried verbatim.
type MapRow struct {
	Marker string
	Aux1   string
	Aux2   string
	Chr    int
	Bp     int
}
