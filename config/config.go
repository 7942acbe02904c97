// Package config holds the tunables for the local coverage planner and
// loads them from a YAML file via gopkg.in/yaml.v3, standing in for the
// parameter server a ROS-hosted planner would normally read from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config aggregates every scalar the planner's components read (§6 of the
// spec: four numeric thresholds plus two runtime booleans).
type Config struct {
	Coverage CoverageConfig `yaml:"coverage"`
	Runtime  RuntimeConfig  `yaml:"runtime"`
}

// CoverageConfig groups the greedy selector's thresholds and iteration caps.
type CoverageConfig struct {
	// MinAddPointNum is the minimum marginal surface-point gain a viewpoint
	// must offer to enter the surface queue or pass the selector's gate.
	MinAddPointNum int `yaml:"min_add_point_num"`

	// MinAddFrontierPointNum is the frontier-mode analogue of MinAddPointNum.
	MinAddFrontierPointNum int `yaml:"min_add_frontier_point_num"`

	// GreedyViewPointSampleRange bounds how many top-ranked queue entries the
	// randomized greedy selector samples from at each pick.
	GreedyViewPointSampleRange int `yaml:"greedy_viewpoint_sample_range"`

	// LocalPathOptimizationItrMax bounds how many greedy+TSP iterations the
	// orchestrator runs when the surface queue qualifies for the main branch.
	LocalPathOptimizationItrMax int `yaml:"local_path_optimization_itr_max"`
}

// RuntimeConfig groups the per-cycle runtime switches.
type RuntimeConfig struct {
	// FrontierModeEnabled turns on the frontier queue and its coupled selection pass.
	FrontierModeEnabled bool `yaml:"frontier_mode_enabled"`

	// LookaheadPointUpdate controls whether the lookahead anchor is resolved by
	// nearest-candidate lookup (true) or collapsed onto the robot anchor (false).
	LookaheadPointUpdate bool `yaml:"lookahead_point_update"`
}

// Default tunables, chosen to match the small-instance scale the spec's
// end-to-end scenarios exercise (a handful to a few dozen candidates).
const (
	DefaultMinAddPointNum              = 10
	DefaultMinAddFrontierPointNum      = 5
	DefaultGreedyViewPointSampleRange  = 3
	DefaultLocalPathOptimizationItrMax = 3
)

// DefaultConfig returns a Config with sensible defaults: frontier mode and
// lookahead updates on, thresholds matching the constants above.
func DefaultConfig() Config {
	return Config{
		Coverage: CoverageConfig{
			MinAddPointNum:              DefaultMinAddPointNum,
			MinAddFrontierPointNum:      DefaultMinAddFrontierPointNum,
			GreedyViewPointSampleRange:  DefaultGreedyViewPointSampleRange,
			LocalPathOptimizationItrMax: DefaultLocalPathOptimizationItrMax,
		},
		Runtime: RuntimeConfig{
			FrontierModeEnabled:  true,
			LookaheadPointUpdate: true,
		},
	}
}

// LoadConfig reads and parses a YAML config file at path, starting from
// DefaultConfig() so a file that only overrides a handful of fields still
// yields a fully-populated Config. Missing or malformed files return an
// error; the caller decides whether to fall back to DefaultConfig().
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: file not found: %s", path)
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports whether every tunable is within the range the planner's
// components assume (§6: sample range and iteration cap are small positive
// integers; thresholds are non-negative).
func (c Config) Validate() error {
	switch {
	case c.Coverage.MinAddPointNum < 0:
		return fmt.Errorf("coverage.min_add_point_num must be >= 0, got %d", c.Coverage.MinAddPointNum)
	case c.Coverage.MinAddFrontierPointNum < 0:
		return fmt.Errorf("coverage.min_add_frontier_point_num must be >= 0, got %d", c.Coverage.MinAddFrontierPointNum)
	case c.Coverage.GreedyViewPointSampleRange < 1:
		return fmt.Errorf("coverage.greedy_viewpoint_sample_range must be >= 1, got %d", c.Coverage.GreedyViewPointSampleRange)
	case c.Coverage.LocalPathOptimizationItrMax < 1:
		return fmt.Errorf("coverage.local_path_optimization_itr_max must be >= 1, got %d", c.Coverage.LocalPathOptimizationItrMax)
	}
	return nil
}
