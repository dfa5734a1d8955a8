// Package cross reconciles the parsed happy tables into one genome-wide
// cross object: the markers present in both the genotype data and the
// physical map, the founder-allele consensus at each of them, and the
// reference allele every genotype is later coded against.
package cross

import (
	"fmt"
	"strconv"

	"github.com/tavareshugo/atMAGIC/happy"
	"gonum.org/v1/gonum/floats"
)

// Marker is one retained marker with coordinates from both maps: the
// genetic position from the .alleles header and the physical position from
// the .map row.
type Marker struct {
	Name string
	Chr  int
	CM   float64
	Bp   int
}

// Cross holds the reconciled tables. Founder and Sample are raw allele
// calls indexed [individual][marker]; Ref is the reference allele per
// marker. Blocks and MapRows keep the retained source records so the happy
// trio can be regenerated after filtering.
type Cross struct {
	RefFounder string
	Founders   []string
	Samples    []string
	Markers    []Marker
	Ref        []string
	Founder    [][]string
	Sample     [][]string
	Blocks     []happy.AlleleBlock
	MapRows    []happy.MapRow
}

// DropReport says which markers reconciliation discarded: GenoOnly lists
// genotyped markers with no physical-map row, MapOnly lists mapped markers
// that were never genotyped.
type DropReport struct {
	GenoOnly []string
	MapOnly  []string
	Retained int
}

// Reconcile intersects the genotyped markers with the physical map, keeps
// the survivors in genome order, and derives the reference allele and the
// founder consensus at each from the founder-probability blocks. refFounder
// names the accession whose allele becomes the reference.
func Reconcile(founder *happy.AllelesFile, geno *happy.GenoFile, maps []happy.MapRow, refFounder string) (*Cross, *DropReport, error) {
	refIdx := -1
	for i, s := range founder.Strains {
		if s == refFounder {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return nil, nil, fmt.Errorf("reference founder %s is not among the %d strains of %s", refFounder, len(founder.Strains), founder.Name)
	}

	blockIdx := make(map[string]*happy.AlleleBlock, len(founder.Blocks))
	for i := range founder.Blocks {
		blockIdx[founder.Blocks[i].Info.Name] = &founder.Blocks[i]
	}

	mapIdx := make(map[string]happy.MapRow, len(maps))
	for _, row := range maps {
		if _, ok := mapIdx[row.Marker]; ok {
			return nil, nil, fmt.Errorf("marker %s has more than one physical-map row", row.Marker)
		}
		mapIdx[row.Marker] = row
	}

	out := &Cross{
		RefFounder: refFounder,
		Founders:   founder.Strains,
		Samples:    geno.Samples,
	}
	report := &DropReport{}

	// Genome order is the genotype table's column order; the map only
	// contributes coordinates.
	keep := make([]int, 0, len(geno.Markers))
	for j, name := range geno.Markers {
		row, ok := mapIdx[name]
		if !ok {
			report.GenoOnly = append(report.GenoOnly, name)
			continue
		}

		block, ok := blockIdx[name]
		if !ok {
			return nil, nil, fmt.Errorf("genotyped marker %s has no founder-allele block in %s", name, founder.Name)
		}
		if chr := strconv.Itoa(row.Chr); block.Info.Chr != chr {
			return nil, nil, fmt.Errorf("marker %s: founder file places it on chromosome %s, map on %s", name, block.Info.Chr, chr)
		}

		keep = append(keep, j)
		out.Markers = append(out.Markers, Marker{
			Name: name,
			Chr:  row.Chr,
			CM:   block.Info.CM,
			Bp:   row.Bp,
		})
		out.Ref = append(out.Ref, consensusAllele(block, refIdx))
		out.Blocks = append(out.Blocks, *block)
		out.MapRows = append(out.MapRows, row)
		delete(mapIdx, name)
	}
	for _, row := range maps {
		if _, ok := mapIdx[row.Marker]; ok {
			report.MapOnly = append(report.MapOnly, row.Marker)
		}
	}
	report.Retained = len(keep)
	if report.Retained == 0 {
		return nil, nil, fmt.Errorf("no genotyped marker has a physical-map row")
	}

	out.Sample = make([][]string, len(geno.Samples))
	for i := range geno.Samples {
		row := make([]string, len(keep))
		for k, j := range keep {
			row[k] = geno.Calls[i][j]
		}
		out.Sample[i] = row
	}

	out.Founder = make([][]string, len(out.Founders))
	for s := range out.Founders {
		row := make([]string, len(out.Markers))
		for k, m := range out.Markers {
			row[k] = consensusAllele(blockIdx[m.Name], s)
		}
		out.Founder[s] = row
	}

	return out, report, nil
}

// consensusAllele is the allele a founder strain most probably carries at a
// marker. The reference allele is the consensus at the reference founder.
// Ties go to the first allele row; the missing row carries no allele
// identity and never competes.
func consensusAllele(b *happy.AlleleBlock, strain int) string {
	if floats.MaxIdx([]float64{b.Allele1.P[strain], b.Allele2.P[strain]}) == 0 {
		return b.Allele1.Allele
	}

	return b.Allele2.Allele
}
