package entities

import (
	"regexp"
	"strconv"
	"strings"
)

// Jewelry attribute normalization. The legacy schema stored diamond grades
// as free text: "VS1", "vs1/vs2", "G - H", "1.5ct", ".75 CT TW". The
// destination wants canonical grade and range spellings so marketplace
// listings group correctly.

var clarityGrades = []string{"FL", "IF", "VVS1", "VVS2", "VS1", "VS2", "SI1", "SI2", "SI3", "I1", "I2", "I3"}

var rangeSeparators = regexp.MustCompile(`\s*[-/–]\s*`)

// normalizeClarity canonicalizes one clarity value or range. Unknown grades
// come back as ok=false with the cleaned input preserved.
func normalizeClarity(raw string) (string, bool) {
	return normalizeRange(raw, func(part string) (string, bool) {
		p := strings.ToUpper(strings.TrimSpace(part))
		for _, g := range clarityGrades {
			if p == g {
				return g, true
			}
		}
		return p, false
	})
}

// normalizeColor canonicalizes a diamond color grade (D-Z) or range.
func normalizeColor(raw string) (string, bool) {
	return normalizeRange(raw, func(part string) (string, bool) {
		p := strings.ToUpper(strings.TrimSpace(part))
		if len(p) == 1 && p[0] >= 'D' && p[0] <= 'Z' {
			return p, true
		}
		return p, false
	})
}

func normalizeRange(raw string, one func(string) (string, bool)) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	parts := rangeSeparators.Split(raw, -1)
	out := make([]string, 0, len(parts))
	ok := true
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		canon, valid := one(part)
		if !valid {
			ok = false
		}
		out = append(out, canon)
	}
	if len(out) == 0 {
		return "", true
	}
	return strings.Join(out, "-"), ok
}

var weightPattern = regexp.MustCompile(`^\s*(\d*\.?\d+)\s*(?:ct|cts|carat|carats|ctw|ct\s*tw)?\.?\s*$`)

// normalizeWeight extracts a carat weight from legacy free text. Returns
// ok=false when the text holds no parseable number.
func normalizeWeight(raw string) (float64, bool) {
	m := weightPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
