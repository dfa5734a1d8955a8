// crosscheck reads a written bundle back and verifies it before it gets
// shared: consistent marker sets across the four tables, declared genotype
// codes only, the reference founder present, sorted maps, and the published
// founder panel and chromosome set.
package main

import (
	"flag"
	"log"

	atmagic "github.com/tavareshugo/atMAGIC"
	_ "github.com/tavareshugo/atMAGIC/compileinfoprint"
	"github.com/tavareshugo/atMAGIC/qtl2"
)

func main() {
	var control string
	flag.StringVar(&control, "control", "", "Path to the bundle's control file, e.g. magic_qtl2/control.json (required)")
	flag.Parse()

	if control == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide -control")
	}

	control, err := atmagic.ExpandHome(control)
	if err != nil {
		log.Fatalln(err)
	}

	b, err := qtl2.ReadBundle(control)
	if err != nil {
		log.Fatalln(err)
	}
	if err := b.Verify(); err != nil {
		log.Fatalln(err)
	}
	if err := atmagic.ValidateFounders(b.Control.Founders); err != nil {
		log.Fatalln(err)
	}
	chrs := make([]int, len(b.Pmap))
	for i, row := range b.Pmap {
		chrs[i] = row.Chr
	}
	if err := atmagic.ValidateChromosomes(chrs); err != nil {
		log.Fatalln(err)
	}

	ref, _ := b.ReferenceFounder()
	log.Printf("OK: %d samples and %d founders typed at %d markers; reference founder %s",
		len(b.Geno.IDs), len(b.FounderGeno.IDs), len(b.Geno.Markers), ref)

	chr, count := 0, 0
	for i, row := range b.Pmap {
		if i == 0 || row.Chr != chr {
			if count > 0 {
				log.Printf("Chromosome %d: %d markers", chr, count)
			}
			chr, count = row.Chr, 0
		}
		count++
	}
	if count > 0 {
		log.Printf("Chromosome %d: %d markers", chr, count)
	}
}
