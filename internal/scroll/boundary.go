package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
)

// Leeway is the percentage of the scrollable range, measured back from the
// true end, at which loading is triggered. Valid values are 0 through 100.
type Leeway float64

// Clamp returns l limited to 0..100. NaN becomes 0.
func (l Leeway) Clamp() Leeway {
	switch {
	case math.IsNaN(float64(l)) || l < 0:
		return 0
	case l > 100:
		return 100
	default:
		return l
	}
}

// Valid reports whether l is within 0..100.
func (l Leeway) Valid() bool {
	return !math.IsNaN(float64(l)) && l >= 0 && l <= 100
}

// String formats the leeway as a percentage, e.g. "50%".
func (l Leeway) String() string {
	return strconv.FormatFloat(float64(l), 'f', -1, 64) + "%"
}

// ParseLeeway accepts a percentage string ("50%", "50", " 12.5 % "), any Go
// integer or float, or a Leeway. The result is not clamped.
func ParseLeeway(v any) (Leeway, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case Leeway:
		return x, nil
	case float64:
		return Leeway(x), nil
	case float32:
		return Leeway(x), nil
	case int:
		return Leeway(x), nil
	case int8:
		return Leeway(x), nil
	case int16:
		return Leeway(x), nil
	case int32:
		return Leeway(x), nil
	case int64:
		return Leeway(x), nil
	case uint:
		return Leeway(x), nil
	case uint8:
		return Leeway(x), nil
	case uint16:
		return Leeway(x), nil
	case uint32:
		return Leeway(x), nil
	case uint64:
		return Leeway(x), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, nil
		}
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.NewValidationError("leeway must be a percentage").
				WithValue(x).
				WithCause(err)
		}
		return Leeway(f), nil
	default:
		return 0, errors.NewValidationError(fmt.Sprintf("unsupported leeway type %T", v)).WithValue(v)
	}
}

// Boundary is the outcome of one boundary evaluation.
type Boundary struct {
	// Bottom is ScrollExtent minus ViewportExtent.
	Bottom float64
	// Threshold is Bottom discounted by the leeway.
	Threshold float64
	// Reached is true when Offset >= Threshold.
	Reached bool
	// Scrollable is true when the content is larger than the viewport.
	Scrollable bool
}

// Detect evaluates m against leeway. Out-of-range leeway values are clamped.
//
// The comparison is >= rather than equality so offsets that land a fraction
// past the threshold still count.
func Detect(m Metrics, leeway Leeway) Boundary {
	bottom := m.ScrollExtent - m.ViewportExtent
	threshold := bottom * (1 - float64(leeway.Clamp())/100)
	return Boundary{
		Bottom:     bottom,
		Threshold:  threshold,
		Reached:    m.Offset >= threshold,
		Scrollable: m.ScrollExtent > m.ViewportExtent,
	}
}
