package cross

import "github.com/tavareshugo/atMAGIC/happy"

// MarkerMissingness returns, per retained marker, the fraction of samples
// whose call is missing.
func (c *Cross) MarkerMissingness() []float64 {
	out := make([]float64, len(c.Markers))
	if len(c.Samples) == 0 {
		return out
	}

	for _, row := range c.Sample {
		for j, call := range row {
			if call == happy.MissingCall {
				out[j]++
			}
		}
	}
	for j := range out {
		out[j] /= float64(len(c.Samples))
	}

	return out
}

// SampleMissingness returns, per sample, the fraction of retained markers
// whose call is missing.
func (c *Cross) SampleMissingness() []float64 {
	out := make([]float64, len(c.Samples))
	if len(c.Markers) == 0 {
		return out
	}

	for i, row := range c.Sample {
		n := 0.0
		for _, call := range row {
			if call == happy.MissingCall {
				n++
			}
		}
		out[i] = n / float64(len(c.Markers))
	}

	return out
}
