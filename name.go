package noise

import (
	"strconv"
	"strings"
	"unicode"
)

// SanitizeName replaces every character outside [A-Za-z0-9_] with '_' and
// prefixes names that start with a digit.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i, r := range name {
		ok := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
		if i == 0 && ok && unicode.IsDigit(r) {
			sb.WriteByte('_')
		}
		if ok {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Namer assigns unique identifiers to modules by identity. A module keeps
// its identifier for the lifetime of the Namer; named modules use their
// name, unnamed ones a lower-case variant name with a counter.
//
// Namer is not safe for concurrent use.
type Namer struct {
	names  map[Module]string
	taken  map[string]bool
	counts map[Kind]int
}

// NewNamer returns an empty Namer.
func NewNamer() *Namer {
	return &Namer{
		names:  make(map[Module]string),
		taken:  make(map[string]bool),
		counts: make(map[Kind]int),
	}
}

// Name returns the identifier of m, assigning one on first use.
func (n *Namer) Name(m Module) string {
	if id, ok := n.names[m]; ok {
		return id
	}
	id := m.Name()
	if id == "" || n.taken[id] {
		prefix := id
		if prefix == "" {
			prefix = lowerFirst(m.Kind().String())
		}
		for {
			n.counts[m.Kind()]++
			id = prefix + strconv.Itoa(n.counts[m.Kind()])
			if !n.taken[id] {
				break
			}
		}
	}
	n.taken[id] = true
	n.names[m] = id
	return id
}

// Len returns the number of modules named so far.
func (n *Namer) Len() int { return len(n.names) }

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
