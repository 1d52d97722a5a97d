/*
Package config provides typed configuration access over map[string]any.

# Overview

config wraps a decoded YAML or JSON document and exposes accessor
methods that take a default value, so wiring code reads settings
without nil checks or verbose type assertions. Missing keys and values
of the wrong type fall back to the supplied default.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "backend":   "sqlite",
	    "retention": "72h",
	    "verbose":   true,
	})

	backend := cfg.String("backend", "memory")        // "sqlite"
	retention := cfg.Duration("retention", time.Hour) // 72h
	verbose := cfg.Bool("verbose", false)             // true
	limit := cfg.Int("limit", 100)                    // 100 (missing)

# Nested Sections

Sub returns a nested mapping as its own Config. Missing and mis-typed
sections come back empty, so chained lookups stay safe:

	path := cfg.Sub("journal").String("path", "events.db")

# Type Coercion

Duration accepts several input forms:
  - string: parsed with time.ParseDuration ("250ms", "1h30m")
  - int, int64: whole seconds
  - float64: seconds, fractional part kept
  - time.Duration: used directly

Int converts from int64, and from float64 when the value has no
fractional part. Float converts from int and int64.

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("eventkit.yaml")
	if err != nil {
	    log.Fatal(err)
	}

FromYAML and FromJSON parse raw bytes directly. FromFile picks the
parser from the file extension (.yaml, .yml, .json).

# Thread Safety

Config is read-only after creation and safe for concurrent use, as
long as the source map is not mutated externally.
*/
package config
