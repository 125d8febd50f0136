// Package config holds the validated settings logger.New needs to
// build a zap logger.
package config

import "github.com/pkg/errors"

// Level mirrors zapcore's level ints without importing zapcore here,
// so callers configuring via viper/toml don't need the zap package.
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

// Configuration is the validated shape of LOG_LEVEL / LOG_TIME_FORMAT.
type Configuration struct {
	Level      int
	TimeFormat string
}

// Validate rejects levels outside the known range and an empty time
// format, the two ways a misconfigured logger would otherwise fail
// silently inside zap instead of at startup.
func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return errors.Errorf("config: log level %d out of range", c.Level)
	}
	if c.TimeFormat == "" {
		return errors.New("config: log time format must not be empty")
	}
	return nil
}
