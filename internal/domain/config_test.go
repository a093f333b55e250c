package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    Range
		wantErr bool
	}{
		{"0-30", Range{Min: 0, Max: 30}, false},
		{"120-239", Range{Min: 120, Max: 239}, false},
		{"360+", Range{Min: 360, Open: true}, false},
		{" 0-30 ", Range{Min: 0, Max: 30}, false},
		{"30", Range{}, true},
		{"30-10", Range{}, true},
		{"-5-10", Range{}, true},
		{"abc+", Range{}, true},
		{"", Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRange(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("ParseRange(%q) error should wrap ErrInvalidConfig, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseRange(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	closed := MustParseRange("90-179")
	if !closed.Contains(90) || !closed.Contains(179) {
		t.Fatalf("bounds must be inclusive")
	}
	if closed.Contains(89) || closed.Contains(180) {
		t.Fatalf("values outside bounds must be excluded")
	}

	open := MustParseRange("360+")
	if !open.Contains(360) || !open.Contains(100000) {
		t.Fatalf("open range must contain everything at or above its floor")
	}
	if open.Contains(359) {
		t.Fatalf("open range must not contain values below its floor")
	}
}

func TestECLStagingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ECLStagingConfig
		wantErr bool
	}{
		{
			name:    "default config is valid",
			cfg:     DefaultECLStagingConfig(),
			wantErr: false,
		},
		{
			name: "gap between stages",
			cfg: ECLStagingConfig{
				Stage1: MustParseRange("0-119"),
				Stage2: MustParseRange("130-239"),
				Stage3: MustParseRange("240+"),
			},
			wantErr: true,
		},
		{
			name: "overlapping stages",
			cfg: ECLStagingConfig{
				Stage1: MustParseRange("0-120"),
				Stage2: MustParseRange("120-239"),
				Stage3: MustParseRange("240+"),
			},
			wantErr: true,
		},
		{
			name: "first stage does not start at zero",
			cfg: ECLStagingConfig{
				Stage1: MustParseRange("1-119"),
				Stage2: MustParseRange("120-239"),
				Stage3: MustParseRange("240+"),
			},
			wantErr: true,
		},
		{
			name: "terminal stage not open",
			cfg: ECLStagingConfig{
				Stage1: MustParseRange("0-119"),
				Stage2: MustParseRange("120-239"),
				Stage3: MustParseRange("240-999"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestECLStagingConfig_Classify(t *testing.T) {
	cfg := DefaultECLStagingConfig()

	tests := []struct {
		days int
		want Stage
	}{
		{0, Stage1},
		{119, Stage1},
		{120, Stage2},
		{239, Stage2},
		{240, Stage3},
		{100000, Stage3},
	}

	for _, tt := range tests {
		if got := cfg.Classify(tt.days); got != tt.want {
			t.Fatalf("Classify(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestLocalImpairmentConfig_Validate(t *testing.T) {
	cfg := DefaultLocalImpairmentConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	bad := DefaultLocalImpairmentConfig()
	bad.OLEM.Rate = decimal.NewFromFloat(1.5)
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("rate above 1 should fail validation, got %v", err)
	}

	bad = DefaultLocalImpairmentConfig()
	bad.Substandard.Days = MustParseRange("91-179")
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("gapped ranges should fail validation, got %v", err)
	}

	bad = DefaultLocalImpairmentConfig()
	bad.Loss.Rate = decimal.NewFromFloat(-0.1)
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("negative rate should fail validation, got %v", err)
	}
}

func TestLocalImpairmentConfig_Classify(t *testing.T) {
	cfg := DefaultLocalImpairmentConfig()

	tests := []struct {
		days int
		want Category
	}{
		{0, CategoryCurrent},
		{29, CategoryCurrent},
		{30, CategoryOLEM},
		{89, CategoryOLEM},
		// NDIA of exactly 90 belongs to substandard, the higher bucket.
		{90, CategorySubstandard},
		{179, CategorySubstandard},
		{180, CategoryDoubtful},
		{359, CategoryDoubtful},
		{360, CategoryLoss},
		{100000, CategoryLoss},
	}

	for _, tt := range tests {
		if got := cfg.Classify(tt.days); got != tt.want {
			t.Fatalf("Classify(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestLocalImpairmentConfig_Rate(t *testing.T) {
	cfg := DefaultLocalImpairmentConfig()

	if got := cfg.Rate(CategoryDoubtful); !got.Equal(decimal.NewFromFloat(0.5)) {
		t.Fatalf("Rate(doubtful) = %s, want 0.5", got)
	}
	if got := cfg.Rate(CategoryUnclassified); !got.IsZero() {
		t.Fatalf("Rate(unclassified) = %s, want 0", got)
	}
}
