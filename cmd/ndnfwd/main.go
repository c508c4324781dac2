/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Command ndnfwd starts the forwarder: load configuration, bring up
// the worker pool, register faces, and run until a termination signal
// arrives. Grounded on the teacher's fw/executor/main.go and
// fw/executor/yanfd.go startup sequence, trimmed to the faces this
// module actually implements (no listeners — only the internal face
// pair a management or test client would dial into).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/ndnfwd/core/core"
	"github.com/ndnfwd/core/dispatch"
	"github.com/ndnfwd/core/face"
	"github.com/ndnfwd/core/fw"
	"github.com/ndnfwd/core/table"
)

func main() {
	flagset := flag.NewFlagSet("ndnfwd", flag.ExitOnError)
	flagset.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <config-file>\n", os.Args[0])
		flagset.PrintDefaults()
	}
	var printVersion bool
	flagset.BoolVar(&printVersion, "version", false, "Print version and exit")
	flagset.Parse(os.Args[1:])

	if printVersion {
		fmt.Fprintln(os.Stderr, "ndnfwd: a Named Data Networking forwarding daemon core")
		os.Exit(0)
	}

	configfile := flagset.Arg(0)
	if flagset.NArg() != 1 || configfile == "" {
		flagset.Usage()
		os.Exit(3)
	}

	config := core.DefaultConfig()
	config.Core.BaseDir = filepath.Dir(configfile)

	f, err := os.Open(configfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Unable to open configuration file: "+err.Error())
		os.Exit(3)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Strict(true).Decode(config); err != nil {
		fmt.Fprintln(os.Stderr, "Unable to parse configuration file: "+err.Error())
		os.Exit(3)
	}
	core.C = config
	core.StartTimestamp = time.Now()
	core.OpenLogger()
	table.Initialize()

	fw.FreezeRegistry()

	n := core.C.Fw.Threads
	if n < 1 {
		core.Log.Fatal(nil, "fw.threads must be at least 1", "configured", n)
	}

	threads := make([]*fw.Thread, n)
	forDispatch := make([]dispatch.FWThread, n)
	for i := 0; i < n; i++ {
		t := fw.NewThread(i)
		threads[i] = t
		forDispatch[i] = t
	}
	dispatch.InitializeFWThreads(forDispatch)
	dispatch.InitDropCounters(n)

	for _, t := range threads {
		go t.Run()
	}
	core.Log.Info(nil, "forwarding workers started", "count", n)

	// The internal face pair is this module's only face: real
	// transports (UDP/TCP/WebSocket/Ethernet listeners) are out of
	// scope, but something has to give a management or test client a
	// way to inject packets into the running worker pool.
	fwd, _ := face.NewInternalFacePair()
	core.Log.Info(nil, "internal face pair registered", "faceid", fwd.FaceID())

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	core.Log.Info(nil, "received signal, shutting down", "signal", receivedSig)

	for _, t := range threads {
		t.TellToQuit()
	}
	for _, t := range threads {
		<-t.HasQuit()
	}
}
