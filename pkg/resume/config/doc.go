/*
Package config holds the construction-time settings of a checkpoint
controller and loaders for reading them from YAML or JSON files.

# Overview

All defaults are explicit constants on an explicit struct: there is no
hidden process-wide state. A controller either receives a Config (via
resume.WithConfig) or the equivalent individual options.

# Basic Usage

	cfg := config.Default()
	cfg.RatePeriod = 10 * time.Second
	cfg.Name = "nightly-fit"

Or load from a file:

	cfg, err := config.FromFile("resume.yaml")

# File Format

Durations accept Go duration strings ("30s", "1h30m") or bare numbers
interpreted as seconds:

	rate_period: 30s
	ttl: 86400
	root: .checkpoints
	backend: file
	name: nightly-fit
*/
package config
