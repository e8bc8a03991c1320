package check

import (
	"errors"
	"testing"
)

func configFor(req Value, patterns []string, wav Value) *Config {
	return &Config{
		Requirements: Requirements{Value: req, PatternItems: patterns},
		Waivers:      Waivers{Value: wav},
	}
}

// TestDetectMode tests the four mode predicates and their priority order.
func TestDetectMode(t *testing.T) {
	tests := []struct {
		name     string
		req      Value
		patterns []string
		wav      Value
		want     Mode
		wantErr  bool
	}{
		{
			name: "NA requirement and NA waiver is boolean",
			req:  NotApplicable(),
			wav:  NotApplicable(),
			want: ModeBoolean,
		},
		{
			name: "NA requirement and zero waiver is boolean",
			req:  NotApplicable(),
			wav:  NumberValue(0),
			want: ModeBoolean,
		},
		{
			name: "unset values behave as NA",
			want: ModeBoolean,
		},
		{
			name:     "numeric requirement with patterns is count",
			req:      NumberValue(2),
			patterns: []string{"X", "Y"},
			wav:      NotApplicable(),
			want:     ModeCount,
		},
		{
			name:     "count with zero waiver stays count",
			req:      NumberValue(2),
			patterns: []string{"X"},
			wav:      NumberValue(0),
			want:     ModeCount,
		},
		{
			name:     "count with positive waiver is count-waived",
			req:      NumberValue(2),
			patterns: []string{"X"},
			wav:      NumberValue(3),
			want:     ModeCountWaived,
		},
		{
			name: "NA requirement with positive waiver is boolean-waived",
			req:  NotApplicable(),
			wav:  NumberValue(1),
			want: ModeBooleanWaived,
		},
		{
			name:    "numeric requirement without patterns is an error",
			req:     NumberValue(2),
			wav:     NotApplicable(),
			wantErr: true,
		},
		{
			name:    "numeric requirement without patterns and positive waiver is an error",
			req:     NumberValue(2),
			wav:     NumberValue(1),
			wantErr: true,
		},
		{
			name:    "negative waiver is an error",
			req:     NotApplicable(),
			wav:     NumberValue(-1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMode(configFor(tt.req, tt.patterns, tt.wav))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DetectMode() = %v, want error", got)
				}
				var ce *ConfigurationError
				if !errors.As(err, &ce) {
					t.Fatalf("DetectMode() error = %T, want *ConfigurationError", err)
				}
				if !errors.Is(err, ErrAmbiguousMode) {
					t.Errorf("DetectMode() error does not wrap ErrAmbiguousMode: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectMode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDetectMode_Deterministic tests that detection is a pure function of
// its three inputs.
func TestDetectMode_Deterministic(t *testing.T) {
	cfg := configFor(NumberValue(2), []string{"X"}, NumberValue(3))
	first, err := DetectMode(cfg)
	if err != nil {
		t.Fatalf("DetectMode() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := DetectMode(cfg)
		if err != nil || got != first {
			t.Fatalf("DetectMode() = (%v, %v) on repeat, want (%v, nil)", got, err, first)
		}
	}
}

func TestDisplayOnly(t *testing.T) {
	if !configFor(NotApplicable(), nil, NumberValue(0)).DisplayOnly() {
		t.Error("zero waiver value must enable display-only")
	}
	if configFor(NotApplicable(), nil, NotApplicable()).DisplayOnly() {
		t.Error("NA waiver value must not enable display-only")
	}
	if configFor(NotApplicable(), nil, NumberValue(2)).DisplayOnly() {
		t.Error("positive waiver value must not enable display-only")
	}
}
