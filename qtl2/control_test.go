package qtl2

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewControl(t *testing.T) {
	founders := []string{"Bur-0", "Can-0", "Col-0"}
	ctl := NewControl("magic", "test bundle", founders)

	if ctl.Crosstype != "magic19" {
		t.Errorf("crosstype = %s, expected magic19", ctl.Crosstype)
	}
	if ctl.Geno != "magic_geno.csv" || ctl.FounderGeno != "magic_foundergeno.csv" {
		t.Errorf("unexpected genotype table names %s / %s", ctl.Geno, ctl.FounderGeno)
	}
	if ctl.Gmap != "magic_gmap.csv" || ctl.Pmap != "magic_pmap.csv" {
		t.Errorf("unexpected map table names %s / %s", ctl.Gmap, ctl.Pmap)
	}
	if ctl.Sep != "," || ctl.CommentChar != "#" {
		t.Errorf("unexpected conventions sep=%q comment=%q", ctl.Sep, ctl.CommentChar)
	}
	if len(ctl.NAStrings) != 2 || ctl.NAStrings[0] != "NA" || ctl.NAStrings[1] != "-" {
		t.Errorf("unexpected NA strings %v", ctl.NAStrings)
	}
	if ctl.Genotypes["1"] != 1 || ctl.Genotypes["2"] != 2 || ctl.Genotypes["3"] != 3 {
		t.Errorf("unexpected genotype code table %v", ctl.Genotypes)
	}
	if len(ctl.Founders) != 3 {
		t.Errorf("unexpected founders %v", ctl.Founders)
	}
}

func TestControlJSONKeys(t *testing.T) {
	ctl := NewControl("magic", "test bundle", []string{"Bur-0"})
	out, err := json.Marshal(ctl)
	if err != nil {
		t.Fatal(err)
	}

	// R reads these keys with the dots intact.
	for _, key := range []string{`"na.strings"`, `"comment.char"`, `"founder_geno"`, `"geno_transposed"`, `"crosstype":"magic19"`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("control JSON is missing %s:\n%s", key, out)
		}
	}
}
