package voucher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"campus-eats/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader serves pre-built code sets keyed by path.
type fakeLoader struct {
	sets map[string]CodeSet
	errs map[string]error
}

func (l *fakeLoader) Load(ctx context.Context, path string) (CodeSet, error) {
	if err, ok := l.errs[path]; ok {
		return nil, err
	}
	set, ok := l.sets[path]
	if !ok {
		return nil, fmt.Errorf("no batch at %s", path)
	}
	return set, nil
}

func setOf(codes ...string) CodeSet {
	s := &mapCodeSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

func TestValidator_Validate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := &fakeLoader{sets: map[string]CodeSet{
		"batch1.gz": setOf("CAMPUS2026", "MEALDEAL01", "LUNCH500", "SOLOBATCH1"),
		"batch2.gz": setOf("CAMPUS2026", "LUNCH500"),
		"batch3.gz": setOf("MEALDEAL01"),
	}}

	v, err := NewValidator(ctx, &ValidatorConfig{
		FilePaths:     []string{"batch1.gz", "batch2.gz", "batch3.gz"},
		MinMatchCount: 2,
	}, loader, logger)
	require.NoError(t, err)
	defer v.Close()

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{name: "code in two batches", code: "CAMPUS2026", valid: true},
		{name: "code in first and third batch", code: "MEALDEAL01", valid: true},
		{name: "eight char code in two batches", code: "LUNCH500", valid: true},
		{name: "code in one batch only", code: "SOLOBATCH1", valid: false},
		{name: "unknown code", code: "NOSUCHCODE", valid: false},
		{name: "too short", code: "SHORT", valid: false},
		{name: "too long", code: "WAYTOOLONGCODE1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.code)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidVoucher)
			}
		})
	}
}

func TestValidator_Validate_SingleBatchMatchRejected(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loader := &fakeLoader{sets: map[string]CodeSet{
		"batch1.gz": setOf("ONLYHERE1"),
		"batch2.gz": setOf(),
	}}

	v, err := NewValidator(ctx, &ValidatorConfig{
		FilePaths:     []string{"batch1.gz", "batch2.gz"},
		MinMatchCount: 2,
	}, loader, logger)
	require.NoError(t, err)
	defer v.Close()

	assert.ErrorIs(t, v.Validate(ctx, "ONLYHERE1"), model.ErrInvalidVoucher)
}

func TestValidator_LoadFailurePropagates(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	loadErr := errors.New("file not found")
	loader := &fakeLoader{
		sets: map[string]CodeSet{"batch1.gz": setOf("CAMPUS2026")},
		errs: map[string]error{"batch2.gz": loadErr},
	}

	v, err := NewValidator(ctx, &ValidatorConfig{
		FilePaths:     []string{"batch1.gz", "batch2.gz"},
		MinMatchCount: 2,
	}, loader, logger)

	assert.Nil(t, v)
	assert.ErrorIs(t, err, loadErr)
}

func TestValidator_Validate_CanceledContext(t *testing.T) {
	logger := zerolog.Nop()

	loader := &fakeLoader{sets: map[string]CodeSet{
		"batch1.gz": setOf("CAMPUS2026"),
		"batch2.gz": setOf("CAMPUS2026"),
	}}

	v, err := NewValidator(context.Background(), &ValidatorConfig{
		FilePaths:     []string{"batch1.gz", "batch2.gz"},
		MinMatchCount: 2,
	}, loader, logger)
	require.NoError(t, err)
	defer v.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, v.Validate(ctx, "CAMPUS2026"), model.ErrUnavailable)
}

func TestMapCodeSet(t *testing.T) {
	s := &mapCodeSet{codes: make(map[string]struct{})}

	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains("CAMPUS2026"))

	s.Add("CAMPUS2026")
	s.Add("CAMPUS2026")
	s.Add("LUNCH500")

	assert.Equal(t, 2, s.Size(), "duplicate adds must not grow the set")
	assert.True(t, s.Contains("CAMPUS2026"))
	assert.True(t, s.Contains("LUNCH500"))
}

func TestFileLoader_Load(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "batch.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("CAMPUS2026\nLUNCH500\n\nMEALDEAL01\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	set, err := NewFileLoader(logger).Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Size(), "blank lines are skipped")
	assert.True(t, set.Contains("CAMPUS2026"))
	assert.True(t, set.Contains("LUNCH500"))
	assert.True(t, set.Contains("MEALDEAL01"))
}

func TestFallbackLoader_Load(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("loads from S3 under the configured prefix", func(t *testing.T) {
		s3 := &fakeLoader{sets: map[string]CodeSet{
			"vouchers/batch1.gz": setOf("CAMPUS2026"),
		}}
		file := &fakeLoader{errs: map[string]error{
			"batch1.gz": errors.New("should not be touched"),
		}}

		set, err := NewFallbackLoader(s3, file, "vouchers/", logger).Load(ctx, "batch1.gz")
		require.NoError(t, err)
		assert.True(t, set.Contains("CAMPUS2026"))
	})

	t.Run("falls back to the local file on S3 failure", func(t *testing.T) {
		s3 := &fakeLoader{errs: map[string]error{
			"vouchers/batch1.gz": errors.New("access denied"),
		}}
		file := &fakeLoader{sets: map[string]CodeSet{
			"batch1.gz": setOf("LUNCH500"),
		}}

		set, err := NewFallbackLoader(s3, file, "vouchers/", logger).Load(ctx, "batch1.gz")
		require.NoError(t, err)
		assert.True(t, set.Contains("LUNCH500"))
	})

	t.Run("uses the local file when S3 is not configured", func(t *testing.T) {
		file := &fakeLoader{sets: map[string]CodeSet{
			"batch1.gz": setOf("MEALDEAL01"),
		}}

		set, err := NewFallbackLoader(nil, file, "vouchers/", logger).Load(ctx, "batch1.gz")
		require.NoError(t, err)
		assert.True(t, set.Contains("MEALDEAL01"))
	})

	t.Run("propagates a failure from both sources", func(t *testing.T) {
		s3 := &fakeLoader{errs: map[string]error{
			"vouchers/batch1.gz": errors.New("access denied"),
		}}
		fileErr := errors.New("no such file")
		file := &fakeLoader{errs: map[string]error{
			"batch1.gz": fileErr,
		}}

		_, err := NewFallbackLoader(s3, file, "vouchers/", logger).Load(ctx, "batch1.gz")
		assert.ErrorIs(t, err, fileErr)
	})
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	logger := zerolog.Nop()

	set, err := NewFileLoader(logger).Load(context.Background(), "does-not-exist.gz")

	assert.Nil(t, set)
	assert.Error(t, err)
}
