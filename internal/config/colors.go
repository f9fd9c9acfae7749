package config

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultPlayer1Color = "#BB86FC"
	DefaultPlayer2Color = "#00C2AE"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// a few names people actually type; everything else should be hex
var namedColors = map[string]string{
	"red":    "#FF0000",
	"yellow": "#FFFF00",
	"blue":   "#0000FF",
	"green":  "#008000",
	"orange": "#FFA500",
	"purple": "#800080",
	"pink":   "#FFC0CB",
	"cyan":   "#00FFFF",
	"teal":   "#008080",
	"white":  "#FFFFFF",
	"black":  "#000000",
}

// NormalizeColor turns user input into something the terminal renderer
// understands: "#rgb" and "#rrggbb" are upper-cased, ANSI codes 0-255 pass
// through, known names map to hex. Anything else yields fallback.
func NormalizeColor(input, fallback string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return fallback
	}

	if hexColorRegex.MatchString(s) {
		s = strings.ToUpper(s)
		if len(s) == 4 {
			// #abc -> #AABBCC
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		return s
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n <= 255 {
			return strconv.Itoa(n)
		}
		return fallback
	}

	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return hex
	}

	return fallback
}
