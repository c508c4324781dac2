/* ndnfwd - a Named Data Networking forwarding daemon core
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package core holds process-wide configuration and logging shared by
// every other package in the forwarder: tables, strategies, dispatch,
// and faces all read from core.C and log through core.Log.
package core

import "path/filepath"

// C is the process-wide, immutable-after-load configuration. Nothing
// mutates C once Initialize has returned; runtime-tunable knobs (CS
// capacity, admit/serve toggles) live as atomics in table.mutCfg instead.
var C = DefaultConfig()

// Config mirrors the teacher's core.Config shape: one struct tree per
// subsystem, loaded once from TOML at startup.
type Config struct {
	Core struct {
		LogLevel string `toml:"log_level"`
		LogFile  string `toml:"log_file"`
		BaseDir  string `toml:"-"`
	} `toml:"core"`

	Fw struct {
		// Number of forwarding worker threads.
		Threads int `toml:"threads"`
		// Bounded-queue depth per (direction, worker).
		QueueSize int `toml:"queue_size"`
		// Pin each worker's goroutine to an OS thread.
		LockThreadsToCores bool `toml:"lock_threads_to_cores"`
	} `toml:"fw"`

	Dispatch struct {
		// Name-prefix length hashed to pick a worker; 0 means hash the
		// full name.
		ShardPrefixLen int `toml:"shard_prefix_len"`
	} `toml:"dispatch"`

	Tables struct {
		ContentStore struct {
			Capacity          int    `toml:"capacity"`
			ExactCapacity     int    `toml:"exact_capacity"`
			Admit             bool   `toml:"admit"`
			Serve             bool   `toml:"serve"`
			AdmitUnsolicited  bool   `toml:"admit_unsolicited"`
			ReplacementPolicy string `toml:"replacement_policy"`
		} `toml:"content_store"`

		DeadNonceList struct {
			LifetimeMillis int `toml:"lifetime_ms"`
		} `toml:"dead_nonce_list"`

		NetworkRegion struct {
			Regions []string `toml:"regions"`
		} `toml:"network_region"`
	} `toml:"tables"`

	Strategy struct {
		// Versioned strategy name registered at the root prefix.
		Default string `toml:"default"`
	} `toml:"strategy"`
}

// DefaultConfig returns a Config pre-populated with the forwarder's
// default settings, matching the teacher's DefaultConfig.
func DefaultConfig() *Config {
	c := &Config{}
	c.Core.LogLevel = "INFO"

	c.Fw.Threads = 4
	c.Fw.QueueSize = 1024
	c.Fw.LockThreadsToCores = false

	c.Dispatch.ShardPrefixLen = 2

	c.Tables.ContentStore.Capacity = 1024
	c.Tables.ContentStore.ExactCapacity = 0
	c.Tables.ContentStore.Admit = true
	c.Tables.ContentStore.Serve = true
	c.Tables.ContentStore.AdmitUnsolicited = false
	c.Tables.ContentStore.ReplacementPolicy = "lru"

	c.Tables.DeadNonceList.LifetimeMillis = 6000
	c.Tables.NetworkRegion.Regions = []string{}

	c.Strategy.Default = "/localhost/nfd/strategy/best-route/v=1"

	return c
}

// ResolveRelPath resolves target relative to the config file's directory,
// leaving absolute paths untouched.
func (c *Config) ResolveRelPath(target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(c.Core.BaseDir, target)
}
