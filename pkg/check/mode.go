package check

import "fmt"

// Mode is one of the four fixed evaluation strategies selected from the
// declarative check configuration.
type Mode int

const (
	// ModeBoolean (Mode 1) is the pure boolean check: fail if any finding
	// exists.
	ModeBoolean Mode = 1

	// ModeCount (Mode 2) compares the count of pattern-matched findings
	// against the requirement value; no waiver classification.
	ModeCount Mode = 2

	// ModeCountWaived (Mode 3) is Mode 2 plus waiver classification of the
	// pattern-matched subset.
	ModeCountWaived Mode = 3

	// ModeBooleanWaived (Mode 4) is Mode 1 plus waiver classification of
	// all findings.
	ModeBooleanWaived Mode = 4
)

// String returns a short human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBoolean:
		return "boolean"
	case ModeCount:
		return "count"
	case ModeCountWaived:
		return "count-waived"
	case ModeBooleanWaived:
		return "boolean-waived"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// UsesWaivers reports whether the mode classifies findings against the
// waiver table as part of its verdict (Modes 3 and 4).
func (m Mode) UsesWaivers() bool {
	return m == ModeCountWaived || m == ModeBooleanWaived
}

// CountsPatterns reports whether the mode counts pattern-matched findings
// (Modes 2 and 3).
func (m Mode) CountsPatterns() bool {
	return m == ModeCount || m == ModeCountWaived
}

// DetectMode selects the evaluation mode from a check configuration.
// The rules are evaluated in priority order, first match wins:
//
//  1. requirement "N/A", waiver "N/A" or 0           -> Mode 1
//  2. requirement number, patterns, waiver "N/A" or 0 -> Mode 2
//  3. requirement number, patterns, waiver > 0        -> Mode 3
//  4. requirement "N/A", waiver > 0                   -> Mode 4
//
// Any other combination is a configuration error: the detector never
// guesses a fifth mode.
func DetectMode(cfg *Config) (Mode, error) {
	req := cfg.Requirements.Value
	wav := cfg.Waivers.Value
	hasPatterns := len(cfg.Requirements.PatternItems) > 0
	waiverOff := wav.IsNA() || wav.IsZero()

	switch {
	case req.IsNA() && waiverOff:
		return ModeBoolean, nil

	case req.IsNumber() && hasPatterns && waiverOff:
		return ModeCount, nil

	case req.IsNumber() && hasPatterns && wav.IsNumber() && wav.Number() > 0:
		return ModeCountWaived, nil

	case req.IsNA() && wav.IsNumber() && wav.Number() > 0:
		return ModeBooleanWaived, nil
	}

	field := "requirements"
	msg := fmt.Sprintf("requirement %s with waiver %s selects no evaluation mode", req, wav)
	if req.IsNumber() && !hasPatterns {
		field = "requirements.pattern_items"
		msg = "requirement value set but pattern_items is empty"
	}
	if wav.IsNumber() && wav.Number() < 0 {
		field = "waivers.value"
		msg = fmt.Sprintf("waiver value must not be negative, got %s", wav)
	}
	return 0, &ConfigurationError{Field: field, Message: msg, Cause: ErrAmbiguousMode}
}
