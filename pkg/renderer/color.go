package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// maxChannel keeps 256*value below 256 so the byte conversion never wraps
const maxChannel = 0.999

// QuantizeChannel averages an accumulated channel over samples, applies gamma 2
// correction and maps the result to a byte. NaN and negative sums produce 0.
func QuantizeChannel(sum float64, samples int) byte {
	if samples <= 0 {
		return 0
	}

	value := sum / float64(samples)
	if math.IsNaN(value) || value < 0 {
		return 0
	}

	gamma := math.Sqrt(value)
	if gamma > maxChannel {
		gamma = maxChannel
	}
	return byte(256 * gamma)
}

// QuantizeColor applies QuantizeChannel to each component of an accumulated color
func QuantizeColor(sum core.Vec3, samples int) (r, g, b byte) {
	return QuantizeChannel(sum.X, samples), QuantizeChannel(sum.Y, samples), QuantizeChannel(sum.Z, samples)
}
