package cross

import "github.com/tavareshugo/atMAGIC/happy"

// HappyTables returns the reconciled cross in the legacy happy shapes, with
// only the retained markers, ready for the writers in package happy. Calls
// stay raw; the happy trio is not recoded.
func (c *Cross) HappyTables() (*happy.AllelesFile, *happy.GenoFile, []happy.MapRow) {
	names := make([]string, len(c.Markers))
	for j, m := range c.Markers {
		names[j] = m.Name
	}

	alleles := &happy.AllelesFile{
		Name:    "reconciled",
		Strains: c.Founders,
		Blocks:  c.Blocks,
	}
	geno := &happy.GenoFile{
		Name:    "reconciled",
		Markers: names,
		Samples: c.Samples,
		Calls:   c.Sample,
	}

	return alleles, geno, c.MapRows
}
