package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime converts seconds into the ASS timestamp form H:MM:SS.CC
// (centisecond precision, hours unpadded).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	cs := int(math.Round(seconds * 100))
	h := cs / 360000
	cs -= h * 360000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100

	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// Color converts a web hex color (#RRGGBB) into the ASS/libass channel
// order &H00BBGGRR. Unparseable input falls back to opaque white.
func Color(webHex string) string {
	hex := strings.TrimPrefix(strings.TrimSpace(webHex), "#")
	if len(hex) != 6 {
		return "&H00FFFFFF"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "&H00FFFFFF"
	}

	r := (v >> 16) & 0xFF
	g := (v >> 8) & 0xFF
	b := v & 0xFF
	return fmt.Sprintf("&H00%02X%02X%02X", b, g, r)
}

// AlphaFromOpacity maps a visible-opacity fraction onto the ASS alpha
// override value, where &H00& is fully opaque and &HFF& invisible.
func AlphaFromOpacity(opacity float64) string {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	alpha := int(math.Round((1 - opacity) * 255))
	return fmt.Sprintf("&H%02X&", alpha)
}
