// happy2qtl2 turns the per-chromosome happy files into the two curated
// exports: a merged genome-wide happy trio, and the categorical bundle of
// four delimited tables plus a control file that R/qtl2 reads directly.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	atmagic "github.com/tavareshugo/atMAGIC"
	_ "github.com/tavareshugo/atMAGIC/compileinfoprint"
	"github.com/tavareshugo/atMAGIC/cross"
	"github.com/tavareshugo/atMAGIC/happy"
	"github.com/tavareshugo/atMAGIC/qtl2"
)

func main() {
	var dir, out, prefix, ref, description string
	var cleanup bool
	flag.StringVar(&dir, "dir", "", "Directory holding the unpacked .alleles/.data/.map files (required; see fetchgeno)")
	flag.StringVar(&out, "out", "magic_qtl2", "Directory to write both exports into")
	flag.StringVar(&prefix, "prefix", "magic", "Filename prefix for the exported tables")
	flag.StringVar(&ref, "ref", atmagic.ReferenceFounder, "Founder accession whose allele becomes genotype code 1")
	flag.StringVar(&description, "description", "Arabidopsis MAGIC lines", "Description recorded in the control file")
	flag.BoolVar(&cleanup, "cleanup", false, "Remove -dir after a successful export")
	flag.Parse()

	if dir == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -dir, the directory with the unpacked genotype files")
	}

	dir, err := atmagic.ExpandHome(dir)
	if err != nil {
		log.Fatalln(err)
	}
	out, err = atmagic.ExpandHome(out)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(dir, out, prefix, ref, description, cleanup); err != nil {
		log.Fatalln(err)
	}
}

func run(dir, out, prefix, ref, description string, cleanup bool) error {
	sets, err := happy.DiscoverSets(dir)
	if err != nil {
		return err
	}
	chrs := make([]int, len(sets))
	for i, set := range sets {
		chrs[i] = set.Chr
	}
	if err := atmagic.ValidateChromosomes(chrs); err != nil {
		return err
	}

	var alleleFiles []*happy.AllelesFile
	var genoFiles []*happy.GenoFile
	var mapTables [][]happy.MapRow
	for _, set := range sets {
		af, err := happy.ReadAlleles(set.Alleles)
		if err != nil {
			return err
		}
		gf, err := happy.ReadData(set.Data, af.MarkerNames())
		if err != nil {
			return err
		}
		rows, err := happy.ReadMap(set.Map)
		if err != nil {
			return err
		}
		log.Printf("%s: %d markers, %d samples, %d map rows", set.Stem, len(af.Blocks), len(gf.Samples), len(rows))

		alleleFiles = append(alleleFiles, af)
		genoFiles = append(genoFiles, gf)
		mapTables = append(mapTables, rows)
	}

	founder, err := happy.MergeAlleles(alleleFiles)
	if err != nil {
		return err
	}
	if err := atmagic.ValidateFounders(founder.Strains); err != nil {
		return err
	}
	geno, err := happy.MergeGeno(genoFiles)
	if err != nil {
		return err
	}
	maps := happy.MergeMaps(mapTables)
	log.Printf("Merged %d chromosomes: %d markers, %d samples, %d founders", len(sets), len(geno.Markers), len(geno.Samples), len(founder.Strains))

	c, report, err := cross.Reconcile(founder, geno, maps, ref)
	if err != nil {
		return err
	}
	log.Printf("Retained %d of %d genotyped markers", report.Retained, len(geno.Markers))
	if len(report.GenoOnly) > 0 {
		log.Printf("Dropped %d genotyped markers with no physical-map row: %s", len(report.GenoOnly), strings.Join(report.GenoOnly, " "))
	}
	if len(report.MapOnly) > 0 {
		log.Printf("Ignored %d mapped markers that were never genotyped: %s", len(report.MapOnly), strings.Join(report.MapOnly, " "))
	}

	logQC(c)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return pfx.Err(err)
	}
	if err := writeHappyTrio(out, prefix, c); err != nil {
		return err
	}

	ctl := qtl2.NewControl(prefix, description, c.Founders)
	if err := qtl2.WriteBundle(out, ctl, c); err != nil {
		return err
	}
	log.Printf("Wrote %s", qtl2.ControlFileName(out))

	if cleanup {
		if err := os.RemoveAll(dir); err != nil {
			return pfx.Err(err)
		}
		log.Printf("Removed %s", dir)
	}

	return nil
}

// writeHappyTrio regenerates the merged legacy files, filtered to the
// retained markers, alongside the bundle.
func writeHappyTrio(out, prefix string, c *cross.Cross) error {
	alleles, geno, maps := c.HappyTables()

	af, err := os.Create(filepath.Join(out, prefix+".alleles"))
	if err != nil {
		return pfx.Err(err)
	}
	defer af.Close()
	if err := happy.WriteAlleles(af, alleles); err != nil {
		return err
	}

	df, err := os.Create(filepath.Join(out, prefix+".data"))
	if err != nil {
		return pfx.Err(err)
	}
	defer df.Close()
	if err := happy.WriteData(df, geno); err != nil {
		return err
	}

	mf, err := os.Create(filepath.Join(out, prefix+".map"))
	if err != nil {
		return pfx.Err(err)
	}
	defer mf.Close()
	if err := happy.WriteMap(mf, maps); err != nil {
		return err
	}

	log.Printf("Wrote %s.alleles, %s.data and %s.map under %s", prefix, prefix, prefix, out)

	return nil
}

// logQC summarizes the reconciled cross before export: how informative the
// founder probabilities are and how much genotype data is missing. Purely
// informational; a QC surprise never aborts the export.
func logQC(c *cross.Cross) {
	uninformative := 0
	for _, b := range c.Blocks {
		if b.UninformativeMissing() {
			uninformative++
		}
	}
	log.Printf("%d of %d retained markers carry only the flat 1/%d missing probability", uninformative, len(c.Blocks), len(c.Founders))

	logMissingness("Per-marker", c.MarkerMissingness(), true)
	logMissingness("Per-sample", c.SampleMissingness(), false)
}

func logMissingness(label string, miss []float64, plot bool) {
	if len(miss) == 0 {
		return
	}

	mean, _ := stats.Mean(miss)
	median, _ := stats.Median(miss)
	max, _ := stats.Max(miss)
	min, _ := stats.Min(miss)
	log.Printf("%s missingness: mean %.3f, median %.3f, max %.3f", label, mean, median, max)

	if plot && max > min {
		log.Printf("Distribution of %s missingness:", strings.ToLower(label))
		if err := histogram.Fprint(os.Stderr, histogram.Hist(10, miss), histogram.Linear(40)); err != nil {
			log.Println(err)
		}
	}
}
