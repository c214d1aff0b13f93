// Package config loads the two profile files and the optional tool settings.
//
// A diff profile file (xdiff.yml) maps profile names to a req1/req2 pair
// plus an optional res filter. A request profile file (xreq.yml) maps
// names to a single request. Both are shape-checked with a JSON schema
// before the typed decode, then validated profile by profile in name
// order, so the first failure reported is deterministic.
//
// Settings come from .xdiff.config.json, xdiff.config.json or .xdiffrc in
// the working directory and hold timeout, TLS and proxy defaults.
package config
