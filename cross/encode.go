package cross

import "github.com/tavareshugo/atMAGIC/happy"

// Categorical genotype codes in the exported bundle. The MAGIC lines are
// inbred, so the encoder never emits CodeHet, but the code table published
// alongside the genotypes declares it.
const (
	CodeRef = "1"
	CodeHet = "2"
	CodeAlt = "3"
)

// EncodeCall recodes one raw allele call against a marker's reference
// allele. Missing stays missing; anything that is not the reference allele
// is the alternative.
func EncodeCall(call, ref string) string {
	switch {
	case call == happy.MissingCall:
		return happy.MissingCall
	case call == ref:
		return CodeRef
	default:
		return CodeAlt
	}
}

// EncodedSamples returns the sample-genotype matrix recoded marker by
// marker against the reference alleles.
func (c *Cross) EncodedSamples() [][]string {
	return encodeMatrix(c.Sample, c.Ref)
}

// EncodedFounders returns the founder-consensus matrix recoded the same
// way. The reference founder's row comes out as all CodeRef.
func (c *Cross) EncodedFounders() [][]string {
	return encodeMatrix(c.Founder, c.Ref)
}

func encodeMatrix(calls [][]string, ref []string) [][]string {
	out := make([][]string, len(calls))
	for i, row := range calls {
		enc := make([]string, len(row))
		for j, call := range row {
			enc[j] = EncodeCall(call, ref[j])
		}
		out[i] = enc
	}

	return out
}
