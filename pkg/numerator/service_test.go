package numerator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/internal/core/apperror"
	"faktura/internal/core/numerator"
)

// fakeQuerier emulates the sys_sequences upsert semantics in memory.
type fakeQuerier struct {
	counters map[string]int64
	queries  int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{counters: make(map[string]int64)}
}

type fakeRow struct {
	val int64
}

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.queries++
	key := args[0].(string)

	switch {
	case strings.Contains(sql, "current_val + $2"):
		q.counters[key] += args[1].(int64)
	case strings.Contains(sql, "current_val = $2"):
		q.counters[key] = args[1].(int64)
	default:
		q.counters[key]++
	}
	return fakeRow{val: q.counters[key]}
}

func TestFormatNumber(t *testing.T) {
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "FT-00001", FormatNumber(numerator.QuoteSeries(), period, 1))
	assert.Equal(t, "FT-00123", FormatNumber(numerator.QuoteSeries(), period, 123))
	assert.Equal(t, "FTR-2026-00042", FormatNumber(numerator.InvoiceSeries(), period, 42))
	assert.Equal(t, "CUS-00007", FormatNumber(numerator.DefaultConfig("CUS"), period, 7))

	wide := numerator.Config{Prefix: "X", PadWidth: 3}
	assert.Equal(t, "X-1234", FormatNumber(wide, period, 1234))
}

func TestParseNumber(t *testing.T) {
	quote := numerator.QuoteSeries()
	invoice := numerator.InvoiceSeries()

	n, err := ParseNumber(quote, "FT-00042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ParseNumber(invoice, "FTR-2026-00001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for _, malformed := range []string{
		"INV-00042",    // wrong prefix
		"FT00042",      // missing separator
		"FT-abc",       // non-numeric
		"FTR-00042",    // year part missing for year series
		"FT--00042abc", // trailing garbage
	} {
		cfg := quote
		if strings.HasPrefix(malformed, "FTR") {
			cfg = invoice
		}
		_, err := ParseNumber(cfg, malformed)
		assert.Error(t, err, "expected error for %q", malformed)

		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok, "expected AppError for %q", malformed)
		assert.Equal(t, apperror.CodeNumbering, appErr.Code)
	}
}

func TestGetNextNumber_Strict(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	svc := New(q)
	period := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		num, err := svc.GetNextNumber(ctx, "owner-1", numerator.QuoteSeries(), nil, period)
		require.NoError(t, err)
		assert.Equal(t, FormatNumber(numerator.QuoteSeries(), period, int64(i)), num)
	}

	// Strict strategy goes to the database on every call.
	assert.Equal(t, 3, q.queries)
}

func TestGetNextNumber_OwnersIndependent(t *testing.T) {
	ctx := context.Background()
	svc := New(newFakeQuerier())
	period := time.Now()

	a, err := svc.GetNextNumber(ctx, "owner-a", numerator.QuoteSeries(), nil, period)
	require.NoError(t, err)
	b, err := svc.GetNextNumber(ctx, "owner-b", numerator.QuoteSeries(), nil, period)
	require.NoError(t, err)

	assert.Equal(t, "FT-00001", a)
	assert.Equal(t, "FT-00001", b)
}

func TestGetNextNumber_SeriesIndependent(t *testing.T) {
	ctx := context.Background()
	svc := New(newFakeQuerier())
	period := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	ft, err := svc.GetNextNumber(ctx, "owner-1", numerator.QuoteSeries(), nil, period)
	require.NoError(t, err)
	ftr, err := svc.GetNextNumber(ctx, "owner-1", numerator.InvoiceSeries(), nil, period)
	require.NoError(t, err)

	assert.Equal(t, "FT-00001", ft)
	assert.Equal(t, "FTR-2026-00001", ftr)
}

func TestGetNextNumber_Cached(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	svc := New(q)
	period := time.Now()

	opts := &numerator.Options{Strategy: numerator.StrategyCached, RangeSize: 10}
	cfg := numerator.DefaultConfig("CUS")

	for i := 1; i <= 10; i++ {
		num, err := svc.GetNextNumber(ctx, "owner-1", cfg, opts, period)
		require.NoError(t, err)
		assert.Equal(t, FormatNumber(cfg, period, int64(i)), num)
	}

	// One reservation covers the whole range.
	assert.Equal(t, 1, q.queries)

	num, err := svc.GetNextNumber(ctx, "owner-1", cfg, opts, period)
	require.NoError(t, err)
	assert.Equal(t, FormatNumber(cfg, period, 11), num)
	assert.Equal(t, 2, q.queries)
}

func TestSetNextNumber_DropsCachedRange(t *testing.T) {
	ctx := context.Background()
	q := newFakeQuerier()
	svc := New(q)
	period := time.Now()

	opts := &numerator.Options{Strategy: numerator.StrategyCached, RangeSize: 10}
	cfg := numerator.DefaultConfig("ACC")

	_, err := svc.GetNextNumber(ctx, "owner-1", cfg, opts, period)
	require.NoError(t, err)

	require.NoError(t, svc.SetNextNumber(ctx, "owner-1", cfg, period, 100))

	num, err := svc.GetNextNumber(ctx, "owner-1", cfg, opts, period)
	require.NoError(t, err)
	assert.Equal(t, FormatNumber(cfg, period, 101), num)
}
