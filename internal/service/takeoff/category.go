package takeoff

import (
	"regexp"
	"strconv"
	"strings"

	"steel-estimator/internal/service/normalize"
	"steel-estimator/internal/storage"
)

var plateSize = regexp.MustCompile(`^PL([0-9./-]+)X([0-9./-]+)`)

// CategoryFor maps a shape designation to its material category.
func CategoryFor(shape string) string {
	s := normalize.SizeKey(shape)

	switch {
	case s == "":
		return storage.CategoryCustom
	case strings.HasPrefix(s, "HSS"), strings.HasPrefix(s, "TS"):
		return storage.CategoryHSS
	case strings.HasPrefix(s, "PIPE"):
		return storage.CategoryPipe
	case strings.HasPrefix(s, "PL"):
		return storage.CategoryPlate
	case strings.HasPrefix(s, "MC"), digitAfter(s, "C"):
		return storage.CategoryChannel
	case strings.HasPrefix(s, "HP"), strings.HasPrefix(s, "WT"),
		digitAfter(s, "W"), digitAfter(s, "S"), digitAfter(s, "M"):
		return storage.CategoryWideFlange
	case digitAfter(s, "L"):
		return storage.CategoryAngle
	case strings.HasPrefix(s, "FB"), strings.HasPrefix(s, "RB"), strings.HasPrefix(s, "BAR"), strings.HasPrefix(s, "SQ"):
		return storage.CategoryBar
	}

	return storage.CategoryCustom
}

// ParsePlate reads thickness and width in inches from "PL1/2X6" style sizes.
func ParsePlate(shape string) (thickness, width float64, ok bool) {
	m := plateSize.FindStringSubmatch(normalize.SizeKey(shape))
	if m == nil {
		return 0, 0, false
	}

	thickness, ok1 := parseInches(m[1])
	width, ok2 := parseInches(m[2])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return thickness, width, true
}

// parseInches accepts "6", ".25", "3/4" and "1-1/2".
func parseInches(s string) (float64, bool) {
	whole := 0.0
	if i := strings.Index(s, "-"); i > 0 {
		w, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, false
		}
		whole = w
		s = s[i+1:]
	}

	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return whole + n/d, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return whole + f, true
}

func digitAfter(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) || len(s) <= len(prefix) {
		return false
	}
	c := s[len(prefix)]
	return c >= '0' && c <= '9'
}
