package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvScoringSuccessThreshold     = "CALLQA_SCORING_SUCCESS_THRESHOLD"
	EnvScoringDiscrepancyThreshold = "CALLQA_SCORING_DISCREPANCY_THRESHOLD"
)

// ScoringConfig holds the score boundaries used when summarising evaluations.
// A human score at or above SuccessThreshold counts as a successful call.
// A human/LLM gap at or above DiscrepancyThreshold counts as a high discrepancy.
type ScoringConfig struct {
	SuccessThreshold     float64 `toml:"success_threshold"`
	DiscrepancyThreshold float64 `toml:"discrepancy_threshold"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ScoringConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ScoringConfig) Merge(overlay *ScoringConfig) {
	if overlay.SuccessThreshold != 0 {
		c.SuccessThreshold = overlay.SuccessThreshold
	}
	if overlay.DiscrepancyThreshold != 0 {
		c.DiscrepancyThreshold = overlay.DiscrepancyThreshold
	}
}

func (c *ScoringConfig) loadDefaults() {
	if c.SuccessThreshold == 0 {
		c.SuccessThreshold = 3
	}
	if c.DiscrepancyThreshold == 0 {
		c.DiscrepancyThreshold = 2
	}
}

func (c *ScoringConfig) loadEnv() error {
	if v := os.Getenv(EnvScoringSuccessThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScoringSuccessThreshold, err)
		}
		c.SuccessThreshold = f
	}
	if v := os.Getenv(EnvScoringDiscrepancyThreshold); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvScoringDiscrepancyThreshold, err)
		}
		c.DiscrepancyThreshold = f
	}
	return nil
}

func (c *ScoringConfig) validate() error {
	if c.SuccessThreshold < 0 {
		return fmt.Errorf("success_threshold must not be negative")
	}
	if c.DiscrepancyThreshold <= 0 {
		return fmt.Errorf("discrepancy_threshold must be positive")
	}
	return nil
}
