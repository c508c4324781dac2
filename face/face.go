/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package face defines the forwarder's contract with link services: a
// trimmed-down Face interface plus the one concrete implementation the
// core owns end to end, the internal face pair used by management.
// Real transports (UDP, TCP, WebSocket, Ethernet) are out of scope;
// this package only needs to know how to hand a packet to whatever
// sits on the other side of a registered face.
package face

import (
	"sync/atomic"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
)

// Scope distinguishes faces that originate /localhost-scoped traffic
// from every other face.
type Scope int

const (
	NonLocal Scope = iota
	Local
)

// LinkType describes how many peers a face reaches.
type LinkType int

const (
	PointToPoint LinkType = iota
	Multicast
	AdHoc
)

// Face is the core's contract with a link service: enough to send a
// packet out, learn its identity, and react to its lifecycle. Grounded
// on face/transport.go's transport interface, trimmed to the subset
// the forwarding pipeline and dispatch layer actually call — everything
// about framing, MTU negotiation, and wire encoding belongs to the
// (out of scope) transport underneath a real implementation.
type Face interface {
	dispatch.Face

	Scope() Scope
	LinkType() LinkType

	// AfterAddFace is called once, synchronously, when the face is
	// registered with the forwarder.
	AfterAddFace()
	// BeforeRemoveFace is called once, synchronously, just before the
	// face is unregistered.
	BeforeRemoveFace()
	// AfterStateChange is called whenever the face transitions between
	// up and running.
	AfterStateChange(running bool)

	IsRunning() bool
	Close()
}

// Base provides the bookkeeping every concrete Face embeds: a face ID
// assigned at registration time, running state, and byte counters.
// Grounded on transportBase.
type Base struct {
	faceID   uint64
	scope    Scope
	linkType LinkType
	running  atomic.Bool

	nInBytes  atomic.Uint64
	nOutBytes atomic.Uint64
}

// NewBase initializes a Base with the given scope and link type. The
// face ID is assigned later by Register.
func NewBase(scope Scope, linkType LinkType) Base {
	return Base{scope: scope, linkType: linkType}
}

func (b *Base) FaceID() uint64     { return b.faceID }
func (b *Base) Scope() Scope       { return b.scope }
func (b *Base) LinkType() LinkType { return b.linkType }
func (b *Base) IsAdHoc() bool      { return b.linkType == AdHoc }
func (b *Base) IsRunning() bool    { return b.running.Load() }
func (b *Base) NInBytes() uint64   { return b.nInBytes.Load() }
func (b *Base) NOutBytes() uint64  { return b.nOutBytes.Load() }

func (b *Base) setFaceID(id uint64) { b.faceID = id }
func (b *Base) setRunning(v bool)   { b.running.Store(v) }
func (b *Base) addInBytes(n int)    { b.nInBytes.Add(uint64(n)) }
func (b *Base) addOutBytes(n int)   { b.nOutBytes.Add(uint64(n)) }

// Register assigns face a fresh ID, adds it to the dispatch face
// registry, and fires its AfterAddFace hook. Grounded on
// face/table.go's Table.Add.
func Register(face Face, base *Base) uint64 {
	id := dispatch.NextFaceID()
	base.setFaceID(id)
	base.setRunning(true)
	dispatch.AddFace(id, face)
	face.AfterAddFace()
	face.AfterStateChange(true)
	core.Log.Debug(nil, "registered face", "faceid", id)
	return id
}

// Unregister fires face's BeforeRemoveFace hook and removes it from
// the dispatch registry. Grounded on face/table.go's Table.Remove.
func Unregister(face Face, base *Base) {
	face.BeforeRemoveFace()
	base.setRunning(false)
	face.AfterStateChange(false)
	dispatch.RemoveFace(base.FaceID())
	core.Log.Info(nil, "unregistered face", "faceid", base.FaceID())
}
