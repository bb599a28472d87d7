package voucher

import (
	"context"
	"fmt"
	"sync"

	"campus-eats/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator over a fixed collection of code sets.
// Sets are read-only after initialisation, so lookups need no locking.
type validator struct {
	codeSets []CodeSet
	minMatch int
	logger   zerolog.Logger
}

// ValidatorConfig holds configuration for the voucher validator.
type ValidatorConfig struct {
	// FilePaths is the list of voucher batch files to load.
	FilePaths []string

	// MinMatchCount is the minimum number of batches a code must appear in.
	// Default: 2
	MinMatchCount int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths: []string{
			"data/vouchers/voucherbase1.gz",
			"data/vouchers/voucherbase2.gz",
			"data/vouchers/voucherbase3.gz",
		},
		MinMatchCount: 2,
	}
}

// NewValidator creates a new voucher validator. All batch files are loaded
// concurrently at initialisation time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}
	minMatch := config.MinMatchCount
	if minMatch < 1 {
		minMatch = 2
	}

	logger = logger.With().Str("component", "voucher-validator").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Int("min_match_count", minMatch).
		Msg("initialising voucher validator")

	type loadResult struct {
		index int
		set   CodeSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, path := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()
			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{index: index, set: set, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	v := &validator{
		codeSets: make([]CodeSet, 0, len(config.FilePaths)),
		minMatch: minMatch,
		logger:   logger,
	}

	total := 0
	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load voucher file")
			return nil, fmt.Errorf("failed to load voucher file %s: %w", config.FilePaths[i], result.err)
		}
		v.codeSets = append(v.codeSets, result.set)
		total += result.set.Size()
	}

	logger.Info().
		Int("total_codes", total).
		Msg("voucher validator initialised")

	return v, nil
}

// Validate checks whether a voucher code can be attached to an order. Campus
// voucher codes are 8 to 10 characters and must appear in at least
// MinMatchCount active batches.
func (v *validator) Validate(ctx context.Context, code string) error {
	if len(code) < 8 || len(code) > 10 {
		v.logger.Debug().
			Str("voucher_code", code).
			Int("length", len(code)).
			Msg("voucher code length invalid")
		return model.ErrInvalidVoucher
	}

	matches := 0
	for i, set := range v.codeSets {
		select {
		case <-ctx.Done():
			return model.ErrUnavailable
		default:
		}

		if set.Contains(code) {
			matches++
			if matches >= v.minMatch {
				return nil
			}
		}

		// Not enough sets left to reach the threshold.
		remaining := len(v.codeSets) - i - 1
		if matches+remaining < v.minMatch {
			break
		}
	}

	v.logger.Debug().
		Str("voucher_code", code).
		Int("match_count", matches).
		Msg("voucher code not found in sufficient batches")

	return model.ErrInvalidVoucher
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.codeSets = nil
	return nil
}
