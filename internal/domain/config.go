package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Range is an inclusive days-past-due interval. Open ranges ("360+") have
// no upper bound and may only appear as the terminal band of a config.
type Range struct {
	Min  int
	Max  int
	Open bool
}

// ParseRange parses the "0-30" and "360+" forms used in staging configs.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)

	if min, ok := strings.CutSuffix(s, "+"); ok {
		n, err := strconv.Atoi(min)
		if err != nil || n < 0 {
			return Range{}, fmt.Errorf("%w: invalid days range %q", ErrInvalidConfig, s)
		}
		return Range{Min: n, Open: true}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: invalid days range %q, expected \"0-30\" or \"360+\"", ErrInvalidConfig, s)
	}

	minDays, err := strconv.Atoi(lo)
	if err != nil || minDays < 0 {
		return Range{}, fmt.Errorf("%w: invalid days range %q", ErrInvalidConfig, s)
	}
	maxDays, err := strconv.Atoi(hi)
	if err != nil || maxDays < minDays {
		return Range{}, fmt.Errorf("%w: invalid days range %q", ErrInvalidConfig, s)
	}

	return Range{Min: minDays, Max: maxDays}, nil
}

// MustParseRange is ParseRange for statically known ranges.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains reports whether days falls inside the range. Bounds are inclusive.
func (r Range) Contains(days int) bool {
	if days < r.Min {
		return false
	}
	return r.Open || days <= r.Max
}

// String renders the range back to its config form.
func (r Range) String() string {
	if r.Open {
		return fmt.Sprintf("%d+", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// validateCover checks that an ordered set of ranges partitions [0, inf):
// starts at zero, no gap or overlap between neighbours, terminal band open.
func validateCover(names []string, ranges []Range) error {
	if len(ranges) == 0 {
		return fmt.Errorf("%w: no ranges configured", ErrInvalidConfig)
	}

	if ranges[0].Min != 0 {
		return fmt.Errorf("%w: first range %s (%s) must start at 0", ErrInvalidConfig, names[0], ranges[0])
	}

	for i, r := range ranges {
		last := i == len(ranges)-1

		if r.Open != last {
			if r.Open {
				return fmt.Errorf("%w: open-ended range %s (%s) must be the terminal band", ErrInvalidConfig, names[i], r)
			}
			return fmt.Errorf("%w: terminal range %s (%s) must be open-ended to cover all values", ErrInvalidConfig, names[i], r)
		}

		if last {
			break
		}

		next := ranges[i+1]
		switch {
		case next.Min <= r.Max:
			return fmt.Errorf("%w: ranges %s (%s) and %s (%s) overlap", ErrInvalidConfig, names[i], r, names[i+1], next)
		case next.Min > r.Max+1:
			return fmt.Errorf("%w: gap between ranges %s (%s) and %s (%s)", ErrInvalidConfig, names[i], r, names[i+1], next)
		}
	}

	return nil
}

// ECLStagingConfig holds the IFRS-9 stage boundaries over NDIA.
type ECLStagingConfig struct {
	Stage1 Range
	Stage2 Range
	Stage3 Range
}

// DefaultECLStagingConfig returns the standard three-bucket staging.
func DefaultECLStagingConfig() ECLStagingConfig {
	return ECLStagingConfig{
		Stage1: MustParseRange("0-119"),
		Stage2: MustParseRange("120-239"),
		Stage3: MustParseRange("240+"),
	}
}

// Validate rejects configs that do not partition [0, inf). A config that
// fails here must refuse to run rather than misclassify.
func (c ECLStagingConfig) Validate() error {
	return validateCover(
		[]string{"stage_1", "stage_2", "stage_3"},
		[]Range{c.Stage1, c.Stage2, c.Stage3},
	)
}

// Classify assigns the IFRS-9 stage for an NDIA value. Ranges are checked
// in ascending order, first match wins; no match yields StageUnclassified.
func (c ECLStagingConfig) Classify(days int) Stage {
	switch {
	case c.Stage1.Contains(days):
		return Stage1
	case c.Stage2.Contains(days):
		return Stage2
	case c.Stage3.Contains(days):
		return Stage3
	default:
		return StageUnclassified
	}
}

// CategoryBand couples a regulatory bucket's NDIA range with its provision
// rate, a fraction in [0, 1].
type CategoryBand struct {
	Days Range
	Rate decimal.Decimal
}

// LocalImpairmentConfig holds the five regulatory buckets and their rates.
type LocalImpairmentConfig struct {
	Current     CategoryBand
	OLEM        CategoryBand
	Substandard CategoryBand
	Doubtful    CategoryBand
	Loss        CategoryBand
}

// DefaultLocalImpairmentConfig returns the standard regulatory buckets.
func DefaultLocalImpairmentConfig() LocalImpairmentConfig {
	return LocalImpairmentConfig{
		Current:     CategoryBand{Days: MustParseRange("0-29"), Rate: decimal.NewFromFloat(0.01)},
		OLEM:        CategoryBand{Days: MustParseRange("30-89"), Rate: decimal.NewFromFloat(0.05)},
		Substandard: CategoryBand{Days: MustParseRange("90-179"), Rate: decimal.NewFromFloat(0.25)},
		Doubtful:    CategoryBand{Days: MustParseRange("180-359"), Rate: decimal.NewFromFloat(0.5)},
		Loss:        CategoryBand{Days: MustParseRange("360+"), Rate: decimal.NewFromInt(1)},
	}
}

func (c LocalImpairmentConfig) bands() []CategoryBand {
	return []CategoryBand{c.Current, c.OLEM, c.Substandard, c.Doubtful, c.Loss}
}

// Validate rejects gapped or overlapping ranges and rates outside [0, 1].
func (c LocalImpairmentConfig) Validate() error {
	names := make([]string, 0, 5)
	ranges := make([]Range, 0, 5)
	for i, band := range c.bands() {
		cat := Categories()[i]
		names = append(names, string(cat))
		ranges = append(ranges, band.Days)

		if band.Rate.IsNegative() || band.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: rate %s for %s outside [0, 1]", ErrInvalidConfig, band.Rate, cat)
		}
	}

	return validateCover(names, ranges)
}

// Classify assigns the regulatory category for an NDIA value. First match
// in ascending order wins; no match yields CategoryUnclassified.
func (c LocalImpairmentConfig) Classify(days int) Category {
	for i, band := range c.bands() {
		if band.Days.Contains(days) {
			return Categories()[i]
		}
	}
	return CategoryUnclassified
}

// Rate returns the provision rate for a category, zero for unknown ones.
func (c LocalImpairmentConfig) Rate(cat Category) decimal.Decimal {
	for i, band := range c.bands() {
		if Categories()[i] == cat {
			return band.Rate
		}
	}
	return decimal.Zero
}
