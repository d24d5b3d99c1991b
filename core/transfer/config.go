package transfer

import "time"

// DefaultPollInterval is used when the configured interval is not positive.
const DefaultPollInterval = 500 * time.Millisecond

// Config holds tuning for the transfer manager.
type Config struct {
	// Concurrency is the number of files moved in parallel by directory
	// transfers, and the number of parts moved in parallel per file.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// PartSizeMB is the multipart chunk size in MiB.
	PartSizeMB int `mapstructure:"part_size_mb" default:"16"`
	// PollIntervalMs is how often progress is polled while waiting.
	PollIntervalMs int `mapstructure:"poll_interval_ms" default:"500"`
}

// PollInterval returns the progress polling period.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalMs <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func (c Config) concurrency() int {
	if c.Concurrency <= 0 {
		return 4
	}
	return c.Concurrency
}

func (c Config) partSize() int64 {
	if c.PartSizeMB <= 0 {
		return 0
	}
	return int64(c.PartSizeMB) << 20
}
