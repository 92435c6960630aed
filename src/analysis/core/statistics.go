package core

import "math"

// -----------------------------------------------------------------------------

// Mean computes the arithmetic mean. Returns 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// -----------------------------------------------------------------------------

// SampleStd computes the sample standard deviation (N-1 denominator).
// Returns 0 for fewer than two observations.
func SampleStd(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	mean := Mean(data)
	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	return math.Sqrt(varianceSum / float64(len(data)-1))
}

// -----------------------------------------------------------------------------

// Pearson computes the Pearson correlation coefficient of two equal-length
// samples. ok is false when the coefficient is undefined: fewer than two
// points, mismatched lengths, or zero variance in either sample. A defined
// result is always finite and clamped to [-1, 1] against float drift.
func Pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, false
	}

	n := float64(len(x))

	sumX, sumY, sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0, 0.0, 0.0
	for i := 0; i < len(x); i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := (n * sumXY) - (sumX * sumY)
	denominator := math.Sqrt(((n * sumX2) - (sumX * sumX)) * ((n * sumY2) - (sumY * sumY)))

	if denominator == 0 {
		// Zero variance in at least one sample: correlation is undefined.
		return 0, false
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}

	if result > 1 {
		result = 1
	} else if result < -1 {
		result = -1
	}
	return result, true
}
