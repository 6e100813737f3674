package types

import "time"

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	UserName        string
	ConfigFile      string
	Profile         string
	Region          string
	Format          string
	Output          string
	Dir             string
	PollInterval    time.Duration
	MaxPollAttempts int
	SortPolicies    bool
	Upload          string
	Debug           bool
	NoBanner        bool
}
