package qtl2

import (
	"fmt"

	"github.com/tavareshugo/atMAGIC/cross"
)

// Verify checks a read-back bundle for internal consistency: the four
// tables agree on the marker set and order, the founder table matches the
// declared founders and contains the all-reference row, every genotype is a
// declared code, and both maps are sorted. It returns the first problem
// found.
func (b *Bundle) Verify() error {
	gmapMarkers := make([]string, len(b.Gmap))
	for i, r := range b.Gmap {
		gmapMarkers[i] = r.Marker
	}
	pmapMarkers := make([]string, len(b.Pmap))
	for i, r := range b.Pmap {
		pmapMarkers[i] = r.Marker
	}

	if err := sameOrder(b.Geno.Markers, b.FounderGeno.Markers, b.Control.Geno, b.Control.FounderGeno, "marker"); err != nil {
		return err
	}
	if err := sameOrder(b.Geno.Markers, gmapMarkers, b.Control.Geno, b.Control.Gmap, "marker"); err != nil {
		return err
	}
	if err := sameOrder(b.Geno.Markers, pmapMarkers, b.Control.Geno, b.Control.Pmap, "marker"); err != nil {
		return err
	}
	if err := noDuplicates(b.Geno.Markers, "marker", b.Control.Geno); err != nil {
		return err
	}
	if err := noDuplicates(b.Geno.IDs, "sample", b.Control.Geno); err != nil {
		return err
	}

	if err := sameOrder(b.Control.Founders, b.FounderGeno.IDs, "the control's founder list", b.Control.FounderGeno, "founder"); err != nil {
		return err
	}

	if err := b.verifyCodes(b.Geno, b.Control.Geno); err != nil {
		return err
	}
	if err := b.verifyCodes(b.FounderGeno, b.Control.FounderGeno); err != nil {
		return err
	}
	if _, ok := b.ReferenceFounder(); !ok {
		return fmt.Errorf("%s: no founder reads uniformly %s; a reference founder should", b.Control.FounderGeno, cross.CodeRef)
	}

	if err := verifySorted(len(b.Gmap), b.Control.Gmap,
		func(i int) (int, float64) { return b.Gmap[i].Chr, b.Gmap[i].Pos }); err != nil {
		return err
	}
	if err := verifySorted(len(b.Pmap), b.Control.Pmap,
		func(i int) (int, float64) { return b.Pmap[i].Chr, float64(b.Pmap[i].Pos) }); err != nil {
		return err
	}
	for i := range b.Gmap {
		if b.Gmap[i].Chr != b.Pmap[i].Chr {
			return fmt.Errorf("marker %s: %s places it on chromosome %d, %s on %d",
				b.Gmap[i].Marker, b.Control.Gmap, b.Gmap[i].Chr, b.Control.Pmap, b.Pmap[i].Chr)
		}
	}

	return nil
}

// ReferenceFounder returns the founder whose genotype row is uniformly the
// reference code, if there is one.
func (b *Bundle) ReferenceFounder() (string, bool) {
	for i, id := range b.FounderGeno.IDs {
		uniform := len(b.FounderGeno.Codes[i]) > 0
		for _, code := range b.FounderGeno.Codes[i] {
			if code != cross.CodeRef {
				uniform = false
				break
			}
		}
		if uniform {
			return id, true
		}
	}

	return "", false
}

func (b *Bundle) verifyCodes(t *Table, name string) error {
	for i, row := range t.Codes {
		for j, code := range row {
			if b.isNA(code) {
				continue
			}
			if _, ok := b.Control.Genotypes[code]; !ok {
				return fmt.Errorf("%s: %s at marker %s carries unknown genotype code %q", name, t.IDs[i], t.Markers[j], code)
			}
			if cross.EncodeCall(code, cross.CodeRef) != code {
				return fmt.Errorf("%s: %s at marker %s carries code %q, but an inbred panel recodes to %s or %s only",
					name, t.IDs[i], t.Markers[j], code, cross.CodeRef, cross.CodeAlt)
			}
		}
	}

	return nil
}

func (b *Bundle) isNA(v string) bool {
	for _, na := range b.Control.NAStrings {
		if v == na {
			return true
		}
	}

	return false
}

func sameOrder(a, b []string, aName, bName, noun string) error {
	if len(a) != len(b) {
		return fmt.Errorf("%s lists %d %ss, %s lists %d", aName, len(a), noun, bName, len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%s and %s disagree at %s %d: %s vs %s", aName, bName, noun, i+1, a[i], b[i])
		}
	}

	return nil
}

func noDuplicates(names []string, kind, file string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return fmt.Errorf("%s: %s %s appears more than once", file, kind, n)
		}
		seen[n] = struct{}{}
	}

	return nil
}

// verifySorted checks that chromosomes form single ascending runs and that
// positions never step backwards within one.
func verifySorted(n int, file string, at func(int) (int, float64)) error {
	seen := make(map[int]bool)
	prevChr := 0
	prevPos := 0.0
	for i := 0; i < n; i++ {
		chr, pos := at(i)
		if i == 0 || chr != prevChr {
			if seen[chr] {
				return fmt.Errorf("%s: chromosome %d appears in two separate runs", file, chr)
			}
			seen[chr] = true
			prevChr, prevPos = chr, pos
			continue
		}
		if pos < prevPos {
			return fmt.Errorf("%s: position %v on chromosome %d steps backwards (previous %v)", file, pos, chr, prevPos)
		}
		prevPos = pos
	}

	return nil
}
