package address

import (
	"strings"
	"unicode"
)

// Parsed is the result of splitting a free-text street line
type Parsed struct {
	Street      string
	HouseNumber string
}

// Parse splits a street line into street name and house number.
//
// The heuristic looks for the last space followed by a digit and treats the
// suffix as the house number. When the line starts with a digit instead, the
// leading token is taken. If no numeric token exists the house number stays
// empty and the whole line is the street name; callers must tolerate that.
func Parse(streetLine string) Parsed {
	street := streetLine
	houseNumber := ""

	for offset := len(streetLine) - 1; offset >= 0; offset-- {
		if streetLine[offset] != ' ' {
			continue
		}
		if offset < len(streetLine)-1 && isDigit(rune(streetLine[offset+1])) {
			street = strings.TrimSpace(streetLine[:offset])
			houseNumber = strings.TrimSpace(streetLine[offset+1:])
			break
		}
	}

	if houseNumber == "" && streetLine != "" && isDigit(rune(streetLine[0])) {
		if pos := strings.IndexByte(streetLine, ' '); pos != -1 {
			houseNumber = strings.Trim(streetLine[:pos], ", \t\n\r")
			street = strings.TrimSpace(streetLine[pos+1:])
		}
	}

	return Parsed{Street: street, HouseNumber: houseNumber}
}

// ParseWithFallback parses the first address line and, when no house number
// was found, keeps the raw first line as the street and uses the second
// address line as the house number.
func ParseWithFallback(line1, line2 string) Parsed {
	parsed := Parse(line1)
	if parsed.HouseNumber == "" {
		parsed.Street = line1
		parsed.HouseNumber = line2
	}
	return parsed
}

// HouseNumberDigits strips everything but digits and dots from a parsed
// house number, matching what the PSP accepts in that field.
func HouseNumberDigits(houseNumber string) string {
	var b strings.Builder
	for _, r := range houseNumber {
		if isDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}
