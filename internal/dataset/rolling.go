package dataset

import "fmt"

// RollingMean computes a trailing rolling mean of the given width.
//
// Edge policy: the first window-1 positions have fewer than window samples
// behind them and stay gaps (nil). A window that contains a gap also yields a
// gap rather than averaging the remaining samples, so missing reports never
// leak into the smoothed curve as artificially low values. The output always
// has the same length as the input.
func RollingMean(values []*float64, window int) ([]*float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}

	out := make([]*float64, len(values))
	for i := range values {
		if i+1 < window {
			continue
		}

		sum := 0.0
		complete := true
		for j := i + 1 - window; j <= i; j++ {
			if values[j] == nil {
				complete = false
				break
			}
			sum += *values[j]
		}
		if !complete {
			continue
		}

		mean := sum / float64(window)
		out[i] = &mean
	}

	return out, nil
}
