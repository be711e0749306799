// Package numerator provides domain contracts for document auto-numbering.
package numerator

// Strategy defines the numbering generation strategy.
type Strategy int

const (
	// StrategyStrict uses UPDATE ... RETURNING for every number.
	// Guarantees sequential numbers without gaps.
	// Slower, suitable for quotes and invoices.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory.
	// Much faster, but may produce gaps if application restarts.
	// Suitable for internal documents.
	StrategyCached
)

// Options configuration for number generation.
type Options struct {
	// Strategy to use for number generation
	Strategy Strategy
	// RangeSize is the number of IDs to allocate at once in Cached strategy.
	// Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{
		Strategy: StrategyStrict,
	}
}

// Config holds numbering configuration for one document series.
type Config struct {
	// Prefix added to all numbers (e.g., "FT", "FTR")
	Prefix string

	// IncludeYear adds the period year to the formatted number.
	// Display only: whether the underlying counter resets is governed
	// by ResetPeriod, not by this flag.
	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns a plain series for the given prefix.
// Used for catalog code generation (e.g. CUS-00001).
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: false,
		PadWidth:    5,
		ResetPeriod: "never",
	}
}

// QuoteSeries is the numbering series for quotes: FT-00001.
// Counter is per owner and never resets.
func QuoteSeries() Config {
	return Config{
		Prefix:      "FT",
		IncludeYear: false,
		PadWidth:    5,
		ResetPeriod: "never",
	}
}

// InvoiceSeries is the numbering series for invoices: FTR-2026-00001.
// The displayed year follows the issue date but the counter itself never
// resets; FTR-2027-00042 can directly follow FTR-2026-00041. Kept for
// compatibility with numbers already issued.
func InvoiceSeries() Config {
	return Config{
		Prefix:      "FTR",
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "never",
	}
}
