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

package fusion

import (
	"log/slog"

	"znkr.io/fusion/internal/config"
)

// Option configures the behavior of registries and diffs.
type Option = config.Option

// Engine computes the result vectors for an old sequence of length n and a new sequence of length
// m, given only the identity predicate eq. rx must have length n+1 and ry length m+1; rx[s] marks
// the s-th old item as removed, ry[t] marks the t-th new item as inserted, and the last element of
// both is false. All unmarked items are matched in order and must be identity-equal.
type Engine = config.Engine

// TagBits sets the number of high bits of a [Kind] that are reserved for entry tags. The default
// is 16, which leaves 16 bits for the raw kinds reported by providers and allows 65536 providers
// to be registered at the same time. n must be in [1, 31].
//
// Only supported by [New].
func TagBits(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.TagBits = n
		return config.TagBits
	}
}

// Minimal finds a minimal diff irrespective of the cost. By default, diffs of long lists with
// many differences are bounded by heuristics that reduce the time complexity.
//
// With this option, the runtime is O(ND) where N is the sum of the old and the new item count and
// D is the number of differences.
func Minimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Minimal = true
		return config.Minimal
	}
}

// DetectMoves controls whether a removed and an inserted item with the same identity are reported
// as a single [Move]. Enabled by default.
func DetectMoves(enabled bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DetectMoves = enabled
		return config.DetectMoves
	}
}

// Logger sets the logger for debug records about registry mutations and dispatched diffs. By
// default, nothing is logged.
//
// Only supported by [New].
func Logger(l *slog.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logger = l
		return config.Logger
	}
}

// WithEngine replaces the built-in Myers implementation. [Minimal] has no effect on a custom
// engine.
func WithEngine(e Engine) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Engine = e
		return config.EngineFunc
	}
}
