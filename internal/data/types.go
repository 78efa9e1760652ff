package data

// SamplePair holds aligned samples, one element per raster cell kept by the
// extraction. X is the independent layer.
type SamplePair struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (p SamplePair) Len() int { return len(p.X) }

// Aligned reports whether both sides have the same number of samples.
func (p SamplePair) Aligned() bool { return len(p.X) == len(p.Y) }
