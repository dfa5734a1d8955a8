package happy

import (
	"strings"
	"testing"
)

func testAllelesFile(name string, strains []string, markers ...string) *AllelesFile {
	f := &AllelesFile{Name: name, Strains: strains}
	for _, m := range markers {
		f.Blocks = append(f.Blocks, AlleleBlock{Info: MarkerInfo{Name: m, Block: "3", Chr: "1"}})
	}

	return f
}

func TestMergeAlleles(t *testing.T) {
	strains := []string{"Bur-0", "Can-0"}
	merged, err := MergeAlleles([]*AllelesFile{
		testAllelesFile("chr1.alleles", strains, "m1", "m2"),
		testAllelesFile("chr2.alleles", strains, "m3"),
	})
	if err != nil {
		t.Fatal(err)
	}

	names := merged.MarkerNames()
	if len(names) != 3 || names[0] != "m1" || names[2] != "m3" {
		t.Errorf("unexpected merged marker order %v", names)
	}
}

func TestMergeAllelesStrainMismatch(t *testing.T) {
	_, err := MergeAlleles([]*AllelesFile{
		testAllelesFile("chr1.alleles", []string{"Bur-0", "Can-0"}, "m1"),
		testAllelesFile("chr2.alleles", []string{"Bur-0", "Col-0"}, "m2"),
	})
	if err == nil {
		t.Fatal("expected an error for disagreeing strain lists")
	}
	if !strings.Contains(err.Error(), "strain lists disagree") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestMergeAllelesDuplicateMarker(t *testing.T) {
	strains := []string{"Bur-0"}
	_, err := MergeAlleles([]*AllelesFile{
		testAllelesFile("chr1.alleles", strains, "m1"),
		testAllelesFile("chr2.alleles", strains, "m1"),
	})
	if err == nil {
		t.Fatal("expected an error for a duplicated marker name")
	}
	if !strings.Contains(err.Error(), "marker m1 appears in both") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestMergeGeno(t *testing.T) {
	chr1 := &GenoFile{
		Name:    "chr1.data",
		Markers: []string{"m1", "m2"},
		Samples: []string{"MAGIC.1", "MAGIC.2"},
		Calls: [][]string{
			{"A", "T"},
			{"G", "T"},
		},
	}
	chr2 := &GenoFile{
		Name:    "chr2.data",
		Markers: []string{"m3"},
		Samples: []string{"MAGIC.2", "MAGIC.3"},
		Calls: [][]string{
			{"C"},
			{"G"},
		},
	}

	merged, err := MergeGeno([]*GenoFile{chr1, chr2})
	if err != nil {
		t.Fatal(err)
	}

	wantSamples := []string{"MAGIC.1", "MAGIC.2", "MAGIC.3"}
	if len(merged.Samples) != len(wantSamples) {
		t.Fatalf("merged %d samples, expected %d", len(merged.Samples), len(wantSamples))
	}
	for i, s := range wantSamples {
		if merged.Samples[i] != s {
			t.Errorf("sample %d: got %s, expected %s", i, merged.Samples[i], s)
		}
	}

	wantCalls := [][]string{
		{"A", "T", "NA"},
		{"G", "T", "C"},
		{"NA", "NA", "G"},
	}
	for i := range wantCalls {
		for j := range wantCalls[i] {
			if merged.Calls[i][j] != wantCalls[i][j] {
				t.Errorf("call[%d][%d] = %s, expected %s", i, j, merged.Calls[i][j], wantCalls[i][j])
			}
		}
	}
}

func TestMergeGenoDuplicateMarker(t *testing.T) {
	chr1 := &GenoFile{Name: "chr1.data", Markers: []string{"m1"}}
	chr2 := &GenoFile{Name: "chr2.data", Markers: []string{"m1"}}

	_, err := MergeGeno([]*GenoFile{chr1, chr2})
	if err == nil {
		t.Fatal("expected an error for a duplicated marker name")
	}
}

func TestMergeMaps(t *testing.T) {
	merged := MergeMaps([][]MapRow{
		{{Marker: "m1", Chr: 1, Bp: 100}},
		{{Marker: "m2", Chr: 2, Bp: 50}},
	})
	if len(merged) != 2 || merged[0].Marker != "m1" || merged[1].Marker != "m2" {
		t.Errorf("unexpected merged map %v", merged)
	}
}
