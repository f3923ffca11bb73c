package config

import "time"

// RunConfig configures `perfstat run`.
type RunConfig struct {
	Runs    int    `yaml:"runs"`    // timed repetitions per invocation
	Out     string `yaml:"out"`     // data file to append samples to, empty = stdout
	Timeout string `yaml:"timeout"` // overall deadline for one invocation
}

// GetTimeout returns the run timeout as a duration.
func (r RunConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}
