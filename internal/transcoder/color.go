package transcoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedColor is returned for a background colour that is not exactly
// six hex digits after an optional leading '#'.
var ErrMalformedColor = errors.New("malformed color")

// RGB is a decoded background colour.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor decodes "#RRGGBB" or "RRGGBB" (any case).
func ParseHexColor(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q: want 6 hex digits", ErrMalformedColor, s)
	}

	var ch [3]uint8
	for i, off := range []int{0, 2, 4} {
		v, err := strconv.ParseUint(hex[off:off+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: bad digits %q", ErrMalformedColor, s, hex[off:off+2])
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// Hex encodes the colour as six uppercase hex digits without a prefix.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}
