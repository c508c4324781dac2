// Package ndn defines the decoded NDN data model consumed by the
// forwarding core: names, components, and the three packet types
// (Interest, Data, Nack). The TLV wire codec that produces these values
// is out of scope for this module; a Component is already-decoded bytes
// plus a type tag.
package ndn

import (
	"strconv"

	"github.com/cespare/xxhash"
)

// Component type tags, matching the subset of the NDN naming convention
// the core needs to reason about (versioning, segment numbers).
const (
	TypeGenericNameComponent uint64 = 8
	TypeImplicitSha256Digest uint64 = 1
	TypeParametersSha256     uint64 = 2
	TypeSegment              uint64 = 50
	TypeVersion              uint64 = 54
)

// Component is a single element of a Name: an opaque byte string tagged
// with a type. Components are compared canonically by (Typ, Val).
type Component struct {
	Typ uint64
	Val []byte
}

// NewGenericComponent builds a generic name component from a string.
func NewGenericComponent(s string) Component {
	return Component{Typ: TypeGenericNameComponent, Val: []byte(s)}
}

// NewVersionComponent builds a versioned name component (e.g. v=5).
func NewVersionComponent(version uint64) Component {
	return Component{Typ: TypeVersion, Val: encodeNat(version)}
}

// NewSegmentComponent builds a segment-numbered name component.
func NewSegmentComponent(seg uint64) Component {
	return Component{Typ: TypeSegment, Val: encodeNat(seg)}
}

func encodeNat(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	var buf [8]byte
	n := 0
	for v > 0 {
		buf[n] = byte(v)
		v >>= 8
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = buf[n-1-i]
	}
	return out
}

func decodeNat(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// NumberValue returns the numeric value of a Version or Segment
// component, and whether the component carries one.
func (c Component) NumberValue() (uint64, bool) {
	switch c.Typ {
	case TypeVersion, TypeSegment:
		return decodeNat(c.Val), true
	default:
		return 0, false
	}
}

// Equal reports whether two components are identical.
func (c Component) Equal(o Component) bool {
	return c.Typ == o.Typ && string(c.Val) == string(o.Val)
}

// Compare returns -1, 0, or 1 per NDN's canonical component ordering:
// first by type, then by length, then lexicographically by value.
func (c Component) Compare(o Component) int {
	if c.Typ != o.Typ {
		if c.Typ < o.Typ {
			return -1
		}
		return 1
	}
	if len(c.Val) != len(o.Val) {
		if len(c.Val) < len(o.Val) {
			return -1
		}
		return 1
	}
	for i := range c.Val {
		if c.Val[i] != o.Val[i] {
			if c.Val[i] < o.Val[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Hash returns a content hash of the component, used to key NameTree
// children maps.
func (c Component) Hash() uint64 {
	h := xxhash.New()
	h.Write([]byte{byte(c.Typ >> 8), byte(c.Typ)})
	h.Write(c.Val)
	return h.Sum64()
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	val := make([]byte, len(c.Val))
	copy(val, c.Val)
	return Component{Typ: c.Typ, Val: val}
}

// String renders the component in NDN URI syntax (best-effort: generic
// components render as their raw bytes, version/segment as "v=N"/"seg=N").
func (c Component) String() string {
	switch c.Typ {
	case TypeVersion:
		return "v=" + strconv.FormatUint(decodeNat(c.Val), 10)
	case TypeSegment:
		return "seg=" + strconv.FormatUint(decodeNat(c.Val), 10)
	default:
		return string(c.Val)
	}
}
