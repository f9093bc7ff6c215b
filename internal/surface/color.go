package surface

import (
	"regexp"
	"strconv"
	"strings"
)

var rgbPattern = regexp.MustCompile(`rgba?\((\d+),\s*(\d+),\s*(\d+)(?:,\s*([\d.]+))?\)`)

// RGBA is a parsed color, alpha in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// ParseColor reads #rgb, #rrggbb, rgb() and rgba() colors plus the few
// keywords the charts use.
func ParseColor(s string) (RGBA, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "transparent":
		return RGBA{}, true
	case "black":
		return RGBA{A: 1}, true
	case "white":
		return RGBA{R: 255, G: 255, B: 255, A: 1}, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb") {
		m := rgbPattern.FindStringSubmatch(s)
		if m == nil {
			return RGBA{}, false
		}
		c := RGBA{R: channel(m[1]), G: channel(m[2]), B: channel(m[3]), A: 1}
		if m[4] != "" {
			a, err := strconv.ParseFloat(m[4], 64)
			if err != nil {
				return RGBA{}, false
			}
			c.A = a
		}
		return c, true
	}
	return RGBA{}, false
}

func parseHex(h string) (RGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, true
}

func channel(s string) uint8 {
	v, _ := strconv.Atoi(s)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
