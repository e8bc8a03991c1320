package check

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NASentinel is the configuration sentinel marking a requirement or waiver
// value as not applicable.
const NASentinel = "N/A"

type valueKind int

const (
	valueUnset valueKind = iota
	valueNA
	valueNumber
)

// Value is the tagged union for requirement and waiver values: either a
// number or the "N/A" sentinel. It is decoded once at the configuration
// boundary; the engine never probes raw YAML shapes.
//
// The zero Value is unset and behaves as "N/A": a check that declares no
// requirement value is a boolean check.
type Value struct {
	kind   valueKind
	number float64
}

// NumberValue returns a Value holding a number.
func NumberValue(n float64) Value {
	return Value{kind: valueNumber, number: n}
}

// NotApplicable returns the "N/A" Value.
func NotApplicable() Value {
	return Value{kind: valueNA}
}

// IsNA reports whether the value is "N/A" (or was never set).
func (v Value) IsNA() bool {
	return v.kind != valueNumber
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.kind == valueNumber
}

// IsZero reports whether the value holds the number zero. This is the
// display-only waiver sub-mode marker; it is false for "N/A".
func (v Value) IsZero() bool {
	return v.kind == valueNumber && v.number == 0
}

// Number returns the numeric value. Only meaningful when IsNumber is true.
func (v Value) Number() float64 {
	return v.number
}

// String renders the value for reports: "N/A" or the plain number.
func (v Value) String() string {
	if v.IsNA() {
		return NASentinel
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}

// UnmarshalYAML decodes a Value from either a YAML number or the "N/A"
// sentinel (case-insensitive).
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = NotApplicable()
	case string:
		if strings.EqualFold(strings.TrimSpace(t), NASentinel) {
			*v = NotApplicable()
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fmt.Errorf("value must be a number or %q, got %q", NASentinel, t)
		}
		*v = NumberValue(n)
	case int:
		*v = NumberValue(float64(t))
	case float64:
		*v = NumberValue(t)
	default:
		return fmt.Errorf("value must be a number or %q, got %T", NASentinel, raw)
	}
	return nil
}

// MarshalJSON renders the value as a JSON number or the "N/A" string, the
// same shapes the configuration accepts.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNA() {
		return json.Marshal(NASentinel)
	}
	return json.Marshal(v.number)
}
