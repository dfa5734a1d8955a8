package cross

import "testing"

func TestEncodeCall(t *testing.T) {
	tests := []struct {
		call, ref, want string
	}{
		{"A", "A", "1"},
		{"G", "A", "3"},
		{"T", "A", "3"},
		{"NA", "A", "NA"},
	}
	for _, test := range tests {
		if got := EncodeCall(test.call, test.ref); got != test.want {
			t.Errorf("EncodeCall(%s, %s) = %s, expected %s", test.call, test.ref, got, test.want)
		}
	}
}

func TestEncodedMatrices(t *testing.T) {
	founder, geno, maps := testInputs()
	c, _, err := Reconcile(founder, geno, maps, "Col-0")
	if err != nil {
		t.Fatal(err)
	}

	samples := c.EncodedSamples()
	wantSamples := [][]string{
		{"1", "NA"},
		{"3", "1"},
	}
	for i := range wantSamples {
		for j := range wantSamples[i] {
			if samples[i][j] != wantSamples[i][j] {
				t.Errorf("encoded sample [%d][%d] = %s, expected %s", i, j, samples[i][j], wantSamples[i][j])
			}
		}
	}

	founders := c.EncodedFounders()
	for j, code := range founders[2] {
		if code != CodeRef {
			t.Errorf("reference founder Col-0 encodes %s at %s, expected %s", code, c.Markers[j].Name, CodeRef)
		}
	}
	wantBur := []string{"1", "3"} // A matches the reference at m1, C does not at m3
	for j, want := range wantBur {
		if founders[0][j] != want {
			t.Errorf("encoded Bur-0 [%d] = %s, expected %s", j, founders[0][j], want)
		}
	}
}

// Recoding an already coded table against the coded reference changes
// nothing: the codes are their own fixed point.
func TestEncodeIdempotent(t *testing.T) {
	for _, code := range []string{CodeRef, CodeAlt, "NA"} {
		if got := EncodeCall(code, CodeRef); got != code {
			t.Errorf("EncodeCall(%s, %s) = %s, expected %s", code, CodeRef, got, code)
		}
	}
}
