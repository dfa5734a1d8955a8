package happy

import "fmt"

// MergeAlleles concatenates per-chromosome .alleles files, in the order
// given, into one genome-wide file. Every file must list the same strains in
// the same order, and no marker name may appear twice.
func MergeAlleles(files []*AllelesFile) (*AllelesFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no .alleles files to merge")
	}

	out := &AllelesFile{
		Name:    "merged",
		Strains: files[0].Strains,
	}
	seen := make(map[string]string)
	for _, f := range files {
		if err := sameStrains(out.Strains, f.Strains, files[0].Name, f.Name); err != nil {
			return nil, err
		}
		for _, b := range f.Blocks {
			if prev, ok := seen[b.Info.Name]; ok {
				return nil, fmt.Errorf("marker %s appears in both %s and %s", b.Info.Name, prev, f.Name)
			}
			seen[b.Info.Name] = f.Name
			out.Blocks = append(out.Blocks, b)
		}
	}

	return out, nil
}

func sameStrains(a, b []string, aName, bName string) error {
	if len(a) != len(b) {
		return fmt.Errorf("strain lists disagree: %s has %d strains, %s has %d", aName, len(a), bName, len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("strain lists disagree at position %d: %s has %s, %s has %s", i+1, aName, a[i], bName, b[i])
		}
	}

	return nil
}

// MergeGeno outer-joins per-chromosome .data files on sample id. Samples
// keep the order they are first seen in; a sample absent from a chromosome
// gets MissingCall for that chromosome's markers.
func MergeGeno(files []*GenoFile) (*GenoFile, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no .data files to merge")
	}

	out := &GenoFile{Name: "merged"}
	seenMarker := make(map[string]string)
	for _, f := range files {
		for _, m := range f.Markers {
			if prev, ok := seenMarker[m]; ok {
				return nil, fmt.Errorf("marker %s appears in both %s and %s", m, prev, f.Name)
			}
			seenMarker[m] = f.Name
		}
	}

	sampleIdx := make(map[string]int)
	for _, f := range files {
		for _, s := range f.Samples {
			if _, ok := sampleIdx[s]; !ok {
				sampleIdx[s] = len(out.Samples)
				out.Samples = append(out.Samples, s)
			}
		}
	}

	totalMarkers := 0
	for _, f := range files {
		totalMarkers += len(f.Markers)
	}
	out.Markers = make([]string, 0, totalMarkers)
	out.Calls = make([][]string, len(out.Samples))
	for i := range out.Calls {
		out.Calls[i] = make([]string, 0, totalMarkers)
	}

	for _, f := range files {
		offset := len(out.Markers)
		out.Markers = append(out.Markers, f.Markers...)
		for i := range out.Calls {
			for range f.Markers {
				out.Calls[i] = append(out.Calls[i], MissingCall)
			}
		}
		for si, s := range f.Samples {
			row := out.Calls[sampleIdx[s]]
			copy(row[offset:offset+len(f.Markers)], f.Calls[si])
		}
	}

	return out, nil
}

// MergeMaps concatenates per-chromosome map tables in the order given.
func MergeMaps(tables [][]MapRow) []MapRow {
	var out []MapRow
	for _, t := range tables {
		out = append(out, t...)
	}

	return out
}
