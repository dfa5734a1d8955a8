package qtl2

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tavareshugo/atMAGIC/cross"
)

func testCross() *cross.Cross {
	return &cross.Cross{
		RefFounder: "Col-0",
		Founders:   []string{"Bur-0", "Can-0", "Col-0"},
		Samples:    []string{"MAGIC.1", "MAGIC.2"},
		Markers: []cross.Marker{
			{Name: "m1", Chr: 1, CM: 0, Bp: 100},
			{Name: "m2", Chr: 1, CM: 1.5, Bp: 250},
			{Name: "m3", Chr: 2, CM: 0.3, Bp: 90},
		},
		Ref: []string{"A", "T", "G"},
		Founder: [][]string{
			{"A", "T", "C"},
			{"G", "T", "G"},
			{"A", "T", "G"}, // Col-0 matches the reference everywhere
		},
		Sample: [][]string{
			{"A", "NA", "C"},
			{"G", "T", "G"},
		},
	}
}

func writeTestBundle(t *testing.T, ctl Control) string {
	t.Helper()
	dir := t.TempDir()
	if err := WriteBundle(dir, ctl, testCross()); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestWriteReadVerifyBundle(t *testing.T) {
	ctl := NewControl("magic", "test bundle", testCross().Founders)
	dir := writeTestBundle(t, ctl)

	b, err := ReadBundle(ControlFileName(dir))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Verify(); err != nil {
		t.Fatal(err)
	}

	if b.Control.Crosstype != "magic19" {
		t.Errorf("control crosstype = %s", b.Control.Crosstype)
	}
	if len(b.Geno.Markers) != 3 || b.Geno.Markers[2] != "m3" {
		t.Errorf("unexpected geno markers %v", b.Geno.Markers)
	}

	wantGeno := [][]string{
		{"1", "NA", "3"},
		{"3", "1", "1"},
	}
	for i := range wantGeno {
		for j := range wantGeno[i] {
			if b.Geno.Codes[i][j] != wantGeno[i][j] {
				t.Errorf("geno[%d][%d] = %s, expected %s", i, j, b.Geno.Codes[i][j], wantGeno[i][j])
			}
		}
	}

	if ref, ok := b.ReferenceFounder(); !ok || ref != "Col-0" {
		t.Errorf("reference founder = %q, expected Col-0", ref)
	}

	if b.Gmap[1].Pos != 1.5 || b.Pmap[1].Pos != 250 {
		t.Errorf("unexpected map positions gmap=%v pmap=%v", b.Gmap[1], b.Pmap[1])
	}
}

func TestGenoTableLayout(t *testing.T) {
	ctl := NewControl("magic", "test bundle", testCross().Founders)
	dir := writeTestBundle(t, ctl)

	raw, err := os.ReadFile(filepath.Join(dir, "magic_geno.csv"))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(string(raw), "\n")
	if lines[0] != "# test bundle" {
		t.Errorf("first line = %q, expected the description comment", lines[0])
	}
	if lines[1] != "ID,m1,m2,m3" {
		t.Errorf("header = %q", lines[1])
	}
	if lines[2] != "MAGIC.1,1,NA,3" {
		t.Errorf("first data row = %q", lines[2])
	}
}

func TestBundleTabSeparated(t *testing.T) {
	ctl := NewControl("magic", "test bundle", testCross().Founders)
	ctl.Sep = "\t"
	dir := writeTestBundle(t, ctl)

	b, err := ReadBundle(ControlFileName(dir))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Verify(); err != nil {
		t.Fatal(err)
	}
	if b.Geno.Codes[1][0] != "3" {
		t.Errorf("tab-separated bundle read back wrong: %v", b.Geno.Codes)
	}
}

// rewriteControl loads the written control file, mutates it, and writes it
// back, so tests can hand the reader conventions the writer never emits.
func rewriteControl(t *testing.T, dir string, mutate func(*Control)) {
	t.Helper()
	raw, err := os.ReadFile(ControlFileName(dir))
	if err != nil {
		t.Fatal(err)
	}
	var ctl Control
	if err := json.Unmarshal(raw, &ctl); err != nil {
		t.Fatal(err)
	}
	mutate(&ctl)
	out, err := json.MarshalIndent(ctl, "", "    ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ControlFileName(dir), out, 0644); err != nil {
		t.Fatal(err)
	}
}

// A control without a declared separator forces the reader to sniff it from
// the genotype table.
func TestBundleSniffsSeparator(t *testing.T) {
	ctl := NewControl("magic", "test bundle", testCross().Founders)
	dir := writeTestBundle(t, ctl)
	rewriteControl(t, dir, func(c *Control) { c.Sep = "" })

	b, err := ReadBundle(ControlFileName(dir))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Verify(); err != nil {
		t.Fatal(err)
	}
}

// A bad separator and a bad comment character are different problems and
// the diagnostics must say which one it is.
func TestControlConventionErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Control)
		wantSub string
	}{
		{"multi-rune separator", func(c *Control) { c.Sep = "||" }, `separator "||"`},
		{"multi-rune comment character", func(c *Control) { c.CommentChar = "##" }, `comment character "##"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctl := NewControl("magic", "test bundle", testCross().Founders)
			dir := writeTestBundle(t, ctl)
			rewriteControl(t, dir, test.mutate)

			_, err := ReadBundle(ControlFileName(dir))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), test.wantSub)
			}
		})
	}
}

func TestVerifyCatchesTampering(t *testing.T) {
	ctl := NewControl("magic", "test bundle", testCross().Founders)
	dir := writeTestBundle(t, ctl)

	tests := []struct {
		name    string
		tamper  func(b *Bundle)
		wantSub string
	}{
		{
			name:    "reference founder lost",
			tamper:  func(b *Bundle) { b.FounderGeno.Codes[2][0] = "3" },
			wantSub: "no founder reads uniformly 1",
		},
		{
			name:    "marker order mismatch",
			tamper:  func(b *Bundle) { b.Gmap[0].Marker = "zzz" },
			wantSub: "disagree at marker 1",
		},
		{
			name:    "heterozygous code in an inbred panel",
			tamper:  func(b *Bundle) { b.Geno.Codes[0][0] = "2" },
			wantSub: "recodes to 1 or 3 only",
		},
		{
			name:    "unknown genotype code",
			tamper:  func(b *Bundle) { b.Geno.Codes[0][0] = "7" },
			wantSub: "unknown genotype code",
		},
		{
			name:    "physical positions step backwards",
			tamper:  func(b *Bundle) { b.Pmap[1].Pos = 50 },
			wantSub: "steps backwards",
		},
		{
			name: "chromosome split in two runs",
			tamper: func(b *Bundle) {
				b.Gmap[1].Chr, b.Pmap[1].Chr = 2, 2
				b.Gmap[2].Chr, b.Pmap[2].Chr = 1, 1
			},
			wantSub: "two separate runs",
		},
		{
			name:    "founder list mismatch",
			tamper:  func(b *Bundle) { b.Control.Founders[0] = "Ler-0" },
			wantSub: "disagree at founder 1",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := ReadBundle(ControlFileName(dir))
			if err != nil {
				t.Fatal(err)
			}
			test.tamper(b)

			err = b.Verify()
			if err == nil {
				t.Fatal("expected verification to fail")
			}
			if !strings.Contains(err.Error(), test.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), test.wantSub)
			}
		})
	}
}
