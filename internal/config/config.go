// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// fusion.Option.
package config

import (
	"fmt"
	"log/slog"
)

// Engine computes the result vectors for an old sequence of length n and a new sequence of length
// m. rx has length n+1 and ry has length m+1; rx[s] is set if the s-th old element is removed and
// ry[t] is set if the t-th new element is inserted.
type Engine func(n, m int, eq func(s, t int) bool) (rx, ry []bool)

// Config collects all configurable parameters for registries and diffs in this module.
type Config struct {
	// TagBits is the number of high bits of a composite kind that are reserved for entry tags.
	TagBits int

	// If set, the diff engine finds a minimal diff irrespective of the cost.
	Minimal bool

	// If set, removed and inserted items with the same identity are reported as moves.
	DetectMoves bool

	// Logger receives debug records about registry mutations and dispatched diffs.
	Logger *slog.Logger

	// Engine replaces the built-in Myers implementation if set.
	Engine Engine
}

// Limits for TagBits. At least one bit must remain for tags and for raw kinds respectively.
const (
	MinTagBits = 1
	MaxTagBits = 31
)

// Default is the default configuration.
var Default = Config{
	TagBits:     16,
	Minimal:     false,
	DetectMoves: true,
	Logger:      slog.New(slog.DiscardHandler),
	Engine:      nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	TagBits Flag = 1 << iota
	Minimal
	DetectMoves
	Logger
	EngineFunc
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.TagBits < MinTagBits || cfg.TagBits > MaxTagBits {
		panic(fmt.Sprintf("fusion.TagBits(%d) outside of [%d, %d]", cfg.TagBits, MinTagBits, MaxTagBits))
	}
	if cfg.Logger == nil {
		cfg.Logger = Default.Logger
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case TagBits:
		return "fusion.TagBits"
	case Minimal:
		return "fusion.Minimal"
	case DetectMoves:
		return "fusion.DetectMoves"
	case Logger:
		return "fusion.Logger"
	case EngineFunc:
		return "fusion.WithEngine"
	default:
		panic("never reached")
	}
}
