package ndn

import "time"

// Interest is a decoded Interest packet. Grounded on the teacher's
// defn.FwInterest, with the TLV field tags and codegen directives
// dropped since this module never encodes or decodes the wire form.
type Interest struct {
	Name           Name
	CanBePrefix    bool
	MustBeFresh    bool
	ForwardingHint Name
	Nonce          uint32
	HasNonce       bool
	// Lifetime is zero when the Interest carried no lifetime; callers
	// needing the NDN default should treat zero as 4s, matching the
	// teacher's InsertInRecord fallback.
	Lifetime time.Duration
	HopLimit *uint8
}

// MetaInfo carries the producer-supplied metadata of a Data packet.
type MetaInfo struct {
	ContentType     uint64
	HasContentType  bool
	FreshnessPeriod time.Duration
	FinalBlockID    *Component
}

// Data is a decoded Data packet.
type Data struct {
	Name     Name
	MetaInfo MetaInfo
	Content  []byte
}

// NackReason is the reason code carried by a Nack.
type NackReason uint64

const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
)

// Nack is a decoded network-negative-acknowledgment, carrying the
// Interest it responds to plus the reason.
type Nack struct {
	Interest *Interest
	Reason   NackReason
}

// Packet is the tagged union of decoded packet types the core moves
// through its pipelines, mirroring the teacher's defn.FwPacket.
type Packet struct {
	Interest *Interest
	Data     *Data
	Nack     *Nack
}

// PendingPacket is the pending packet plus its framing metadata as it
// flows through the dispatch and forwarding layers. Grounded on
// defn.Pkt, with the Raw wire-bytes field kept (the CS stores original
// bytes, not re-derived ones) but no TLV parsing lives in this module.
type PendingPacket struct {
	Name Name
	L3   *Packet
	Raw  []byte

	PitToken []byte

	IncomingFaceID uint64
	NextHopFaceID  *uint64
}
