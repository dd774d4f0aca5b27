// Package config loads a TOML configuration file of build and render
// settings, following the same single-source-of-defaults pattern the
// teacher's pkg/pipeline.Options uses for its own defaults, serialized
// via [github.com/BurntSushi/toml]. The pdagctl commands do not load
// it; their flags carry their own defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Default values, the single source of truth for [Default] and
// [Config.SetDefaults].
const (
	DefaultVoteReductionStrategy = "duplicate-complement"
	DefaultRenderFormat          = "svg"
	DefaultRenderScale           = 2.0
)

// ValidVoteReductionStrategies is the set of strategies [Config.Validate]
// accepts for Build.VoteReductionStrategy.
var ValidVoteReductionStrategies = map[string]bool{
	"duplicate-complement": true, // the spec's default reduction family
	"none":                 true, // accepted by Validate; see Build.VoteReductionStrategy
}

// ValidRenderFormats mirrors the formats pkg/pdag/render supports.
var ValidRenderFormats = map[string]bool{
	"svg": true,
	"png": true,
	"pdf": true,
	"dot": true,
}

// Build configures PDAG construction.
type Build struct {
	// IncorporateCCF mirrors [pdag.BuildOptions.IncorporateCCF].
	IncorporateCCF bool `toml:"incorporate_ccf"`

	// AutoRegisterStart names whether null_gates/const_gates worklist
	// registration starts enabled. It is decoded with the rest of the
	// file, but no code in this module reads it: [pdag.Build] always
	// enables registration once its traversal completes.
	AutoRegisterStart bool `toml:"auto_register_start"`

	// VoteReductionStrategy names how VOTE gates handle a duplicate or
	// complement argument add. [Config.Validate] checks it against
	// [ValidVoteReductionStrategies], but no build path reads it: VOTE
	// gates always apply the duplicate/complement reduction, "none"
	// included.
	VoteReductionStrategy string `toml:"vote_reduction_strategy"`
}

// Render configures default rendering options.
type Render struct {
	Format   string  `toml:"format"`
	Detailed bool    `toml:"detailed"`
	Scale    float64 `toml:"scale"`
}

// Config is the top-level pdagctl configuration.
type Config struct {
	Build  Build  `toml:"build"`
	Render Render `toml:"render"`
}

// Default returns a Config with every field set to its documented
// default.
func Default() *Config {
	return &Config{
		Build: Build{
			VoteReductionStrategy: DefaultVoteReductionStrategy,
		},
		Render: Render{
			Format: DefaultRenderFormat,
			Scale:  DefaultRenderScale,
		},
	}
}

// Load reads a TOML configuration file at path, starting from
// [Default] so a file that sets only a few fields still produces a
// fully populated Config.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SetDefaults fills in any zero-valued field that must not be empty,
// without overwriting fields the caller already set.
func (c *Config) SetDefaults() {
	if c.Build.VoteReductionStrategy == "" {
		c.Build.VoteReductionStrategy = DefaultVoteReductionStrategy
	}
	if c.Render.Format == "" {
		c.Render.Format = DefaultRenderFormat
	}
	if c.Render.Scale == 0 {
		c.Render.Scale = DefaultRenderScale
	}
}

// Validate checks that every field holds a recognized value.
func (c *Config) Validate() error {
	c.SetDefaults()
	if !ValidVoteReductionStrategies[c.Build.VoteReductionStrategy] {
		return fmt.Errorf("unknown vote_reduction_strategy %q", c.Build.VoteReductionStrategy)
	}
	if !ValidRenderFormats[c.Render.Format] {
		return fmt.Errorf("unknown render format %q", c.Render.Format)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render scale must be positive, got %v", c.Render.Scale)
	}
	return nil
}
