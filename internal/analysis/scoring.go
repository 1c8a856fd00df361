package analysis

import "math"

// NormalizeMax scales scores into [0,1] by dividing by the maximum value.
// An all-zero input comes back as zeros.
func NormalizeMax(scores []float64) []float64 {
	out := make([]float64, len(scores))
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return out
	}
	for i, s := range scores {
		out[i] = s / max
	}
	return out
}

// SmoothData applies a centered moving average of the given window width.
// Windows are truncated at the array edges. Even widths are widened by one to
// stay centered.
func SmoothData(scores []float64, window int) []float64 {
	if window <= 1 || len(scores) == 0 {
		out := make([]float64, len(scores))
		copy(out, scores)
		return out
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2
	out := make([]float64, len(scores))
	for i := range scores {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(scores) {
			hi = len(scores) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += scores[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Sharpen squares each normalized score, stretching the contrast between
// strong and weak buckets.
func Sharpen(scores []float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = s * s
	}
	return out
}

// adaptiveWindow sizes the smoothing window to ~2% of the bucket count,
// forced odd and at least 1.
func adaptiveWindow(n int) int {
	w := int(math.Ceil(float64(n) * 0.02))
	if w%2 == 0 {
		w++
	}
	if w < 1 {
		w = 1
	}
	return w
}

// adaptiveGap sizes the clustering gap tolerance to ~2% of the bucket count.
func adaptiveGap(n int) int {
	return int(math.Ceil(float64(n) * 0.02))
}
