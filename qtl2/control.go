// Package qtl2 writes and reads the categorical genotype bundle: four
// delimited tables (sample genotypes, founder genotypes, genetic map,
// physical map) tied together by a JSON control file, laid out the way the
// R/qtl2 package expects its cross input.
package qtl2

import (
	"github.com/tavareshugo/atMAGIC/cross"
)

// Crosstype identifies a MAGIC population with 19 founders.
const Crosstype = "magic19"

// Control is the JSON manifest naming the bundle's tables and declaring the
// conventions they are written with. Field names follow the control-file
// keys R/qtl2 reads.
type Control struct {
	Description           string         `json:"description"`
	Crosstype             string         `json:"crosstype"`
	Sep                   string         `json:"sep"`
	NAStrings             []string       `json:"na.strings"`
	CommentChar           string         `json:"comment.char"`
	Geno                  string         `json:"geno"`
	FounderGeno           string         `json:"founder_geno"`
	Gmap                  string         `json:"gmap"`
	Pmap                  string         `json:"pmap"`
	Genotypes             map[string]int `json:"genotypes"`
	Founders              []string       `json:"founders"`
	GenoTransposed        bool           `json:"geno_transposed"`
	FounderGenoTransposed bool           `json:"founder_geno_transposed"`
}

// NewControl builds the standard control for a bundle whose tables are
// named <prefix>_geno.csv, <prefix>_foundergeno.csv, <prefix>_gmap.csv and
// <prefix>_pmap.csv.
func NewControl(prefix, description string, founders []string) Control {
	return Control{
		Description: description,
		Crosstype:   Crosstype,
		Sep:         ",",
		NAStrings:   []string{"NA", "-"},
		CommentChar: "#",
		Geno:        prefix + "_geno.csv",
		FounderGeno: prefix + "_foundergeno.csv",
		Gmap:        prefix + "_gmap.csv",
		Pmap:        prefix + "_pmap.csv",
		Genotypes: map[string]int{
			cross.CodeRef: 1,
			cross.CodeHet: 2,
			cross.CodeAlt: 3,
		},
		Founders: founders,
	}
}

// GmapRow is one genetic-map line: marker, chromosome, position in cM.
type GmapRow struct {
	Marker string  `csv:"marker"`
	Chr    int     `csv:"chr"`
	Pos    float64 `csv:"pos"`
}

// PmapRow is one physical-map line: marker, chromosome, position in bp.
type PmapRow struct {
	Marker string `csv:"marker"`
	Chr    int    `csv:"chr"`
	Pos    int    `csv:"pos"`
}
