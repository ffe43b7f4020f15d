package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/revelaction/arcstd/logging"
	"github.com/revelaction/arcstd/predict"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Parse.BatchSize < 1 {
		errs = append(errs, ValidationError{"parse.batch_size", c.Parse.BatchSize, "must be at least 1"})
	}
	if c.Parse.Shards < 1 {
		errs = append(errs, ValidationError{"parse.shards", c.Parse.Shards, "must be at least 1"})
	}
	if !slices.Contains(predict.Names(), c.Parse.Predictor) {
		errs = append(errs, ValidationError{"parse.predictor", c.Parse.Predictor, fmt.Sprintf("must be one of %v", predict.Names())})
	}
	if c.Parse.NoiseRate < 0 || c.Parse.NoiseRate > 1 {
		errs = append(errs, ValidationError{"parse.noise_rate", c.Parse.NoiseRate, "must be between 0 and 1"})
	}
	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, fmt.Sprintf("must be one of %v", logging.ValidLevels())})
	}

	return errs
}
