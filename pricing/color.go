package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	HueCheap     = 140.0 // green
	HueExpensive = 0.0   // red
)

type HSL struct {
	Hue        float64 `json:"hue"`        // degrees
	Saturation float64 `json:"saturation"` // percent
	Lightness  float64 `json:"lightness"`  // percent
}

// PriceColor maps a price onto a green to red hue by its position between
// min and max. A bias curve spreads the colors near both ends of the range
// and compresses the middle. Without a usable range the cheap color is used.
func PriceColor(price, min, max float64) HSL {
	if max <= min {
		return HSL{Hue: HueCheap, Saturation: 80, Lightness: 50}
	}

	normalized := math.Max(0, math.Min(1, (price-min)/(max-min)))

	var biased float64
	if normalized < 0.5 {
		biased = 0.5 * math.Pow(2*normalized, 1.5)
	} else {
		biased = 1 - 0.5*math.Pow(2*(1-normalized), 1.5)
	}

	return HSL{
		Hue:        HueCheap * (1 - biased),
		Saturation: math.Min(100, 75+math.Abs(normalized-0.5)*25),
		Lightness:  50,
	}
}

// String returns the color in CSS notation, e.g. "hsl(140, 80%, 50%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", short(c.Hue), short(c.Saturation), short(c.Lightness))
}

// Hex returns the color as "#rrggbb".
func (c HSL) Hex() string {
	return colorful.Hsl(c.Hue, c.Saturation/100, c.Lightness/100).Clamped().Hex()
}

func short(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
