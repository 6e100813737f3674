package types

import "time"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile             string `json:"profile" yaml:"profile" toml:"profile"`
	Region              string `json:"region" yaml:"region" toml:"region"`
	Format              string `json:"format" yaml:"format" toml:"format"`
	Output              string `json:"output" yaml:"output" toml:"output"`
	Dir                 string `json:"dir" yaml:"dir" toml:"dir"`
	PollIntervalSeconds int    `json:"poll_interval_seconds" yaml:"poll_interval_seconds" toml:"poll_interval_seconds"`
	MaxPollAttempts     int    `json:"max_poll_attempts" yaml:"max_poll_attempts" toml:"max_poll_attempts"`
	SortPolicies        *bool  `json:"sort_policies" yaml:"sort_policies" toml:"sort_policies"`
	Upload              string `json:"upload" yaml:"upload" toml:"upload"`
}

// MergeInto copia os valores do arquivo para args. Flags passadas
// explicitamente (changed devolve true para o nome da flag) têm precedência.
func (c *Config) MergeInto(args *CLIArgs, changed func(flag string) bool) {
	set := func(flag string, present bool) bool {
		return present && !changed(flag)
	}

	if set("profile", c.Profile != "") {
		args.Profile = c.Profile
	}
	if set("region", c.Region != "") {
		args.Region = c.Region
	}
	if set("format", c.Format != "") {
		args.Format = c.Format
	}
	if set("output", c.Output != "") {
		args.Output = c.Output
	}
	if set("dir", c.Dir != "") {
		args.Dir = c.Dir
	}
	if set("poll-interval", c.PollIntervalSeconds > 0) {
		args.PollInterval = time.Duration(c.PollIntervalSeconds) * time.Second
	}
	if set("max-poll-attempts", c.MaxPollAttempts > 0) {
		args.MaxPollAttempts = c.MaxPollAttempts
	}
	if set("no-sort", c.SortPolicies != nil) {
		args.SortPolicies = *c.SortPolicies
	}
	if set("upload", c.Upload != "") {
		args.Upload = c.Upload
	}
}
