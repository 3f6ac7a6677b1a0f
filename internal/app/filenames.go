package app

import (
	"strconv"
	"strings"
	"unicode"
)

const directoryPermission = 0750

// SafeName turns an entity label into a file name stem. Characters other than
// letters, digits, '.', '-' and '_' become '_'.
func SafeName(label string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		return "entity"
	}
	return name
}

// fileNamer hands out distinct stems, suffixing _2, _3, ... when two labels
// sanitize to the same name. Comparison ignores case so the names also stay
// distinct on case-insensitive file systems.
type fileNamer struct {
	used map[string]bool
}

func newFileNamer() *fileNamer {
	return &fileNamer{used: make(map[string]bool)}
}

func (n *fileNamer) next(label string) string {
	base := SafeName(label)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	n.used[strings.ToLower(name)] = true
	return name
}
