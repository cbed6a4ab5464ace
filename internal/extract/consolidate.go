package extract

import (
	"math"
	"sort"

	"github.com/ironsheep/garment-palette-mcp/internal/colorspace"
)

// ConsolidateDistance is the RGB distance (inclusive) within which two
// buckets are merged.
const ConsolidateDistance = 18.0

// Bucket is a colour accumulator. Channels are kept as floats so repeated
// averaging does not drift through rounding.
type Bucket struct {
	R, G, B float64
	Weight  float64
}

// NewBucket creates a bucket from 8-bit channels.
func NewBucket(c colorspace.RGB, weight float64) Bucket {
	return Bucket{R: float64(c.R), G: float64(c.G), B: float64(c.B), Weight: weight}
}

// RGB rounds the bucket colour to 8-bit channels.
func (b Bucket) RGB() colorspace.RGB {
	return colorspace.RGB{R: roundChannel(b.R), G: roundChannel(b.G), B: roundChannel(b.B)}
}

// Hex returns the rounded bucket colour as "#rrggbb".
func (b Bucket) Hex() string {
	return b.RGB().Hex()
}

func (b Bucket) distance(o Bucket) float64 {
	dr, dg, db := b.R-o.R, b.G-o.G, b.B-o.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Consolidate merges any two buckets within threshold of each other, summing
// their weights and averaging their colours, until no pair is that close.
// The input slice is not modified. Output order follows the input order of
// each surviving bucket.
func Consolidate(buckets []Bucket, threshold float64) []Bucket {
	out := append([]Bucket(nil), buckets...)

	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); {
				if out[i].distance(out[j]) > threshold {
					j++
					continue
				}
				out[i] = Bucket{
					R:      (out[i].R + out[j].R) / 2,
					G:      (out[i].G + out[j].G) / 2,
					B:      (out[i].B + out[j].B) / 2,
					Weight: out[i].Weight + out[j].Weight,
				}
				out = append(out[:j], out[j+1:]...)
				merged = true
				j = i + 1
			}
		}
	}
	return out
}

// sortBuckets orders buckets by weight, heaviest first, breaking ties by hex
// so results do not depend on map iteration order.
func sortBuckets(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Weight != buckets[j].Weight {
			return buckets[i].Weight > buckets[j].Weight
		}
		return buckets[i].Hex() < buckets[j].Hex()
	})
}

func roundChannel(v float64) uint8 {
	return uint8(colorspace.Clamp(math.Round(v), 0, 255))
}
