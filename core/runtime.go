/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "time"

// StartTimestamp is the time the forwarder was started, used by the
// status snapshot to compute uptime.
var StartTimestamp time.Time

// ShouldQuit indicates whether worker loops should quit. Set by the
// daemon's signal handler, which is out of scope for this module; the
// core only consumes this flag.
var ShouldQuit = false
