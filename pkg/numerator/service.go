// Package numerator provides the database-backed document numbering service.
// Each owner+series pair has its own monotonic counter row, bumped with a
// single atomic UPSERT ... RETURNING statement. This replaces deriving the
// next number from the most recently created document, which races under
// concurrent creation.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"faktura/internal/core/apperror"
	"faktura/internal/core/numerator"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cachedRange struct {
	current int64
	max     int64
}

// Service provides document numbering functionality.
type Service struct {
	querier Querier

	// cacheMu protects ranges map
	cacheMu sync.Mutex
	// ranges stores active in-memory ranges per owner+series key
	// (Cached strategy only; Strict goes to the database every time)
	ranges map[string]*cachedRange
}

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{
		querier: querier,
		ranges:  make(map[string]*cachedRange),
	}
}

// Ensure compile-time interface compliance.
var _ numerator.Generator = (*Service)(nil)

// GetNextNumber generates the next document number for the owner.
// Pattern: PREFIX-XXXXX or PREFIX-YEAR-XXXXX (e.g., FT-00001, FTR-2026-00001).
func (s *Service) GetNextNumber(ctx context.Context, ownerID string, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	if opts == nil {
		opts = numerator.DefaultOptions()
	}

	key := buildKey(ownerID, cfg, period)
	var num int64
	var err error

	switch opts.Strategy {
	case numerator.StrategyCached:
		num, err = s.getNextCached(ctx, key, opts)
	case numerator.StrategyStrict:
		fallthrough
	default:
		num, err = s.getNextStrict(ctx, key)
	}

	if err != nil {
		return "", err
	}

	return FormatNumber(cfg, period, num), nil
}

// getNextStrict fetches the next number directly from DB using UPSERT + RETURNING.
func (s *Service) getNextStrict(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// getNextCached fetches next number from memory, refilling from DB if needed.
func (s *Service) getNextCached(ctx context.Context, key string, opts *numerator.Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50 // default
		}

		// Reserve 'size' numbers in one statement. current_val tracks the
		// last value handed out, so the reserved range is
		// (new_max - size + 1) .. new_max.
		var newMax int64
		err := s.querier.QueryRow(ctx, `
            INSERT INTO sys_sequences (key, current_val)
            VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
            RETURNING current_val
		`, key, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// SetNextNumber sets the next number value (for migration purposes).
func (s *Service) SetNextNumber(ctx context.Context, ownerID string, cfg numerator.Config, period time.Time, value int64) error {
	key := buildKey(ownerID, cfg, period)

	var result int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, key, value).Scan(&result)

	s.cacheMu.Lock()
	delete(s.ranges, key)
	s.cacheMu.Unlock()

	return err
}

// buildKey creates the sequence key based on owner, config and period.
func buildKey(ownerID string, cfg numerator.Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s:%s_%s", ownerID, cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s:%s_%s", ownerID, cfg.Prefix, period.Format("2006"))
	default:
		return fmt.Sprintf("%s:%s", ownerID, cfg.Prefix)
	}
}

// FormatNumber creates the final number string.
func FormatNumber(cfg numerator.Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric suffix from a formatted number.
// A malformed number is a NumberingError: restarting a series from 1
// because one stored number failed to parse would silently duplicate
// already-issued numbers.
func ParseNumber(cfg numerator.Config, formatted string) (int64, error) {
	rest, ok := strings.CutPrefix(formatted, cfg.Prefix+"-")
	if !ok {
		return 0, apperror.NewNumbering(cfg.Prefix, formatted)
	}

	if cfg.IncludeYear {
		_, rest, ok = strings.Cut(rest, "-")
		if !ok {
			return 0, apperror.NewNumbering(cfg.Prefix, formatted)
		}
	}

	num, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || num < 0 {
		return 0, apperror.NewNumbering(cfg.Prefix, formatted).WithCause(err)
	}
	return num, nil
}
