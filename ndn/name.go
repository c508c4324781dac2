package ndn

import (
	"strconv"
	"strings"
)

// Name is an ordered sequence of components. Unlike the teacher's
// std/encoding.Name, this type carries no wire-encoding methods: the
// core only ever receives Names that have already been decoded from
// the wire by the (out-of-scope) TLV layer.
type Name []Component

// LOCALHOST is the first component of all names reserved for
// forwarder-local traffic (management, internal faces).
var LOCALHOST = NewGenericComponent("localhost")

// LOCALHOP is the first component of names meant to travel at most one
// hop past a local face.
var LOCALHOP = NewGenericComponent("localhop")

// NameFromString parses a slash-separated URI into a Name. A component
// written as "v=<n>" with a decimal n becomes a version component (the
// form Component.String renders), so configured strategy names such as
// "/localhost/nfd/strategy/best-route/v=1" carry a real version; every
// other component, segment markers included, is generic.
func NameFromString(s string) Name {
	s = strings.Trim(s, "/")
	if s == "" {
		return Name{}
	}
	parts := strings.Split(s, "/")
	n := make(Name, len(parts))
	for i, p := range parts {
		if strings.HasPrefix(p, "v=") {
			if v, err := strconv.ParseUint(p[2:], 10, 64); err == nil {
				n[i] = NewVersionComponent(v)
				continue
			}
		}
		n[i] = NewGenericComponent(p)
	}
	return n
}

// String renders the Name in NDN URI syntax.
func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, c := range n {
		sb.WriteByte('/')
		sb.WriteString(c.String())
	}
	return sb.String()
}

// At returns the component at index i (negative indices count from the
// end); out-of-range indices return the zero Component.
func (n Name) At(i int) Component {
	if i < -len(n) || i >= len(n) {
		return Component{}
	}
	if i < 0 {
		return n[len(n)+i]
	}
	return n[i]
}

// Prefix returns the first i components of the name. A non-owning
// slice of n, not a copy.
func (n Name) Prefix(i int) Name {
	if i < 0 {
		i = len(n) + i
	}
	if i <= 0 {
		return Name{}
	}
	if i >= len(n) {
		return n
	}
	return n[:i]
}

// Append returns a new Name with the given components appended.
func (n Name) Append(cs ...Component) Name {
	out := make(Name, len(n)+len(cs))
	copy(out, n)
	copy(out[len(n):], cs)
	return out
}

// Clone returns a deep copy of the name.
func (n Name) Clone() Name {
	out := make(Name, len(n))
	for i, c := range n {
		out[i] = c.Clone()
	}
	return out
}

// Equal reports whether two names have identical components.
func (n Name) Equal(o Name) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if !n[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compare returns -1, 0, or 1 using NDN's canonical name ordering
// (component-wise, shorter-is-smaller when one is a prefix of the other).
func (n Name) Compare(o Name) int {
	for i := 0; i < len(n) && i < len(o); i++ {
		if c := n[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(n) < len(o):
		return -1
	case len(n) > len(o):
		return 1
	default:
		return 0
	}
}

// IsPrefix reports whether n is a prefix of (or equal to) o.
func (n Name) IsPrefix(o Name) bool {
	if len(n) > len(o) {
		return false
	}
	for i := range n {
		if !n[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Hash returns the hash of the full name.
func (n Name) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV offset basis, combined with component hashes
	for _, c := range n {
		h ^= c.Hash()
		h *= 1099511628211
	}
	return h
}

// PrefixHash returns the hash of every prefix of the name, including the
// empty prefix at index 0, so that a descendant's hash can be derived
// incrementally by the NameTree without re-hashing ancestors.
func (n Name) PrefixHash() []uint64 {
	ret := make([]uint64, len(n)+1)
	h := uint64(14695981039346656037)
	ret[0] = h
	for i, c := range n {
		h ^= c.Hash()
		h *= 1099511628211
		ret[i+1] = h
	}
	return ret
}

// IsVersioned reports whether the name carries a version component, and
// if so at what index and value. Used by the strategy registry's
// versioned-name lookup rule.
func (n Name) IsVersioned() (index int, version uint64, ok bool) {
	for i, c := range n {
		if v, isNum := c.NumberValue(); isNum && c.Typ == TypeVersion {
			return i, v, true
		}
	}
	return 0, 0, false
}
