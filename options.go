package xlkit

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/xlkit/xlsx"
)

// LoadOptions holds configuration for loading a workbook.
type LoadOptions struct {
	// Cell content
	dataOnly   bool // cached values only, formulas dropped
	guessTypes bool

	// Restrict Rows/Cells terminals to these sheets; nil means all
	sheets []string

	logger logrus.FieldLogger
}

// defaultOptions returns the default load options.
func defaultOptions() LoadOptions {
	return LoadOptions{
		dataOnly:   false,
		guessTypes: false,
		sheets:     nil,
		logger:     nil,
	}
}

// clone creates a deep copy of LoadOptions.
func (o LoadOptions) clone() LoadOptions {
	newOpts := LoadOptions{
		dataOnly:   o.dataOnly,
		guessTypes: o.guessTypes,
		logger:     o.logger,
	}

	if o.sheets != nil {
		newOpts.sheets = make([]string, len(o.sheets))
		copy(newOpts.sheets, o.sheets)
	}

	return newOpts
}

// loadOptions converts the options into xlsx load options.
func (o LoadOptions) loadOptions() []xlsx.LoadOption {
	var opts []xlsx.LoadOption
	if o.dataOnly {
		opts = append(opts, xlsx.WithDataOnly())
	}
	if o.guessTypes {
		opts = append(opts, xlsx.WithGuessTypes())
	}
	if o.logger != nil {
		opts = append(opts, xlsx.WithLogger(o.logger))
	}
	return opts
}
