// Package atmagic curates the Arabidopsis thaliana MAGIC line genotypes: it
// fetches the published happy-format files, reshapes them, and writes the
// cross bundle that ships with this repository.
package atmagic

import "fmt"

// DefaultArchiveURL is the published archive of per-chromosome happy-format
// genotype files for the MAGIC lines (Kover et al 2009).
const DefaultArchiveURL = "http://mtweb.cs.ucl.ac.uk/mus/www/magic/MAGIC.happy.tar.gz"

// ReferenceFounder is the accession that carries the reference genome; its
// allele calls define the reference state when genotypes are binarized.
const ReferenceFounder = "Col-0"

// NumChromosomes for Arabidopsis thaliana.
const NumChromosomes = 5

// Founders lists the 19 parental accessions of the MAGIC population in the
// column order used by every exported table.
var Founders = []string{
	"Bur-0",
	"Can-0",
	"Col-0",
	"Ct-1",
	"Edi-0",
	"Hi-0",
	"Kn-0",
	"Ler-0",
	"Mt-0",
	"No-0",
	"Oy-0",
	"Po-0",
	"Rsch-4",
	"Sf-2",
	"Tsu-0",
	"Wil-2",
	"Ws-0",
	"Wu-0",
	"Zu-0",
}

// ValidateFounders checks that strains is exactly the published founder
// panel: the 19 accessions of Founders, in order. The panel is a fact of
// the dataset, never inferred from input.
func ValidateFounders(strains []string) error {
	if len(strains) != len(Founders) {
		return fmt.Errorf("founder panel has %d strains, the MAGIC panel has %d", len(strains), len(Founders))
	}
	for i, want := range Founders {
		if strains[i] != want {
			return fmt.Errorf("founder panel position %d is %s, the MAGIC panel has %s there", i+1, strains[i], want)
		}
	}

	return nil
}

// ValidateChromosomes checks that chrs covers chromosomes 1 through
// NumChromosomes and nothing else.
func ValidateChromosomes(chrs []int) error {
	seen := make(map[int]bool, NumChromosomes)
	for _, c := range chrs {
		if c < 1 || c > NumChromosomes {
			return fmt.Errorf("chromosome %d is outside the dataset's %d chromosomes", c, NumChromosomes)
		}
		seen[c] = true
	}
	for c := 1; c <= NumChromosomes; c++ {
		if !seen[c] {
			return fmt.Errorf("chromosome %d is not covered; the dataset spans chromosomes 1 through %d", c, NumChromosomes)
		}
	}

	return nil
}
