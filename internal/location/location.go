// Package location parses test location strings of the form path[:line...].
package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pl/testbridge/internal/errors"
)

// Location is a parsed test location: a file path plus zero or more line
// numbers. Lines preserves the order and count of the original segments
// and never contains a value below 1.
type Location struct {
	Path  string
	Lines []int
}

// Parse splits raw on ":" into a file path and line numbers. The first
// segment is always the path, even when empty; every later segment must
// consist of decimal digits and denote a line >= 1. Any violation rejects
// the whole input. Parse never touches the filesystem.
func Parse(raw string) (Location, error) {
	segments := strings.Split(raw, ":")
	loc := Location{Path: segments[0]}

	for _, seg := range segments[1:] {
		if seg == "" {
			return Location{}, errors.MalformedLocation(raw, "empty line segment")
		}
		if !isDigits(seg) {
			return Location{}, errors.MalformedLocation(raw, fmt.Sprintf("line segment %q is not a number", seg))
		}
		line, err := strconv.Atoi(seg)
		if err != nil {
			return Location{}, errors.MalformedLocation(raw, fmt.Sprintf("line number %q is out of range", seg))
		}
		if line < 1 {
			return Location{}, errors.MalformedLocation(raw, fmt.Sprintf("line number %q must be at least 1", seg))
		}
		loc.Lines = append(loc.Lines, line)
	}

	return loc, nil
}

// String renders the location back into path[:line...] syntax. Line
// numbers are printed in canonical decimal form, so leading zeros from
// the original input do not survive a round trip.
func (l Location) String() string {
	if len(l.Lines) == 0 {
		return l.Path
	}
	var sb strings.Builder
	sb.WriteString(l.Path)
	for _, line := range l.Lines {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(line))
	}
	return sb.String()
}

// isDigits reports whether s is one or more ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
