// Package normalize repairs vendor export text before it reaches the takeoff parser.
package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Garbled forms of the multiplication sign left behind when UTF-8 "×" was read
// back as Windows-1252 or Latin-1, once or twice.
var timesReplacer = strings.NewReplacer(
	"Ãƒâ€”", "x",
	"Ã\u0083â\u0080\u0094", "x",
	"Ã—", "x",
	"Ã\u0097", "x",
	"Â×", "x",
	"×", "x",
	"✕", "x",
)

var inchMarks = strings.NewReplacer(
	`"`, "",
	"″", "",
	"”", "",
	"“", "",
	"''", "",
)

// ShapeSize canonicalizes a shape/size designation: it repairs the
// double-encoded multiplication sign, turns every multiplication sign into "x"
// and strips inch marks. Fractions ("3/4") and decimals (".25") are kept.
func ShapeSize(raw string) string {
	s := strings.TrimSpace(raw)
	s = timesReplacer.Replace(s)
	s = RepairMojibake(s)
	s = timesReplacer.Replace(s)
	s = inchMarks.Replace(s)
	return strings.TrimSpace(s)
}

// Cell trims a CSV cell and repairs UTF-8 text that was decoded as Windows-1252.
func Cell(raw string) string {
	return strings.TrimSpace(RepairMojibake(strings.TrimSpace(raw)))
}

// RepairMojibake reverses one round of UTF-8 -> Windows-1252 misdecoding. The
// input is returned unchanged unless it contains a lead byte marker and the
// re-encoded bytes form valid UTF-8.
func RepairMojibake(s string) string {
	if !strings.ContainsAny(s, "ÃÂâ") {
		return s
	}

	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return s
	}
	if !utf8.Valid(b) {
		return s
	}

	return string(b)
}

// SizeKey is the pricing lookup key for a size: upper case without spaces.
func SizeKey(size string) string {
	s := strings.ToUpper(ShapeSize(size))
	return strings.Join(strings.Fields(s), "")
}
