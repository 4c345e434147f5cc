package xlsx

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/sirupsen/logrus"
)

type loadConfig struct {
	dataOnly   bool
	guessTypes bool
	logger     logrus.FieldLogger
}

// LoadOption configures Load, LoadBytes, LoadReader and the worksheet readers.
type LoadOption func(*loadConfig)

func newLoadConfig(opts []LoadOption) loadConfig {
	c := loadConfig{logger: discardLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDataOnly keeps cached formula results and drops the formula text.
func WithDataOnly() LoadOption {
	return func(c *loadConfig) { c.dataOnly = true }
}

// WithGuessTypes converts string cells that look like numbers, percentages
// or times into typed values.
func WithGuessTypes() LoadOption {
	return func(c *loadConfig) { c.guessTypes = true }
}

// WithLogger sets the logger. A nil logger keeps the default, which discards output.
func WithLogger(l logrus.FieldLogger) LoadOption {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

type saveConfig struct {
	level  int
	logger logrus.FieldLogger
}

// SaveOption configures Save and SaveFile.
type SaveOption func(*saveConfig)

func newSaveConfig(opts []SaveOption) saveConfig {
	c := saveConfig{level: flate.DefaultCompression, logger: discardLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithCompressionLevel sets the deflate level used for every part.
func WithCompressionLevel(level int) SaveOption {
	return func(c *saveConfig) { c.level = level }
}

// WithSaveLogger sets the logger used while saving.
func WithSaveLogger(l logrus.FieldLogger) SaveOption {
	return func(c *saveConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
