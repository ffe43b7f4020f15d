package parse

import (
	"fmt"
	"strings"
)

// Kind is the type of an arc-standard transition.
type Kind int

const (
	// Shift moves the next buffer word onto the stack.
	Shift Kind = iota + 1
	// LeftArc attaches the second stack element under the top one.
	LeftArc
	// RightArc attaches the top stack element under the second one.
	RightArc
)

func (k Kind) String() string {
	switch k {
	case Shift:
		return "SH"
	case LeftArc:
		return "LA"
	case RightArc:
		return "RA"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Transition is a transition with its dependency label. Label is empty for
// Shift and required for the arc transitions.
type Transition struct {
	Kind  Kind
	Label string
}

// NewShift returns the SHIFT transition.
func NewShift() Transition {
	return Transition{Kind: Shift}
}

// NewLeftArc returns the LEFT-ARC transition with the label.
func NewLeftArc(label string) Transition {
	return Transition{Kind: LeftArc, Label: label}
}

// NewRightArc returns the RIGHT-ARC transition with the label.
func NewRightArc(label string) Transition {
	return Transition{Kind: RightArc, Label: label}
}

// String returns the transition in the SH, LA-<label>, RA-<label> notation.
func (t Transition) String() string {
	switch t.Kind {
	case Shift:
		return "SH"
	case LeftArc, RightArc:
		return t.Kind.String() + "-" + t.Label
	}
	return t.Kind.String()
}

// ParseTransition is the inverse of Transition.String.
func ParseTransition(s string) (Transition, error) {
	s = strings.TrimSpace(s)
	if s == "SH" {
		return NewShift(), nil
	}

	prefix, label, ok := strings.Cut(s, "-")
	if !ok || label == "" {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownTransition, s)
	}

	switch prefix {
	case "LA":
		return NewLeftArc(label), nil
	case "RA":
		return NewRightArc(label), nil
	}

	return Transition{}, fmt.Errorf("%w: %q", ErrUnknownTransition, s)
}

// MarshalText encodes the transition in String notation.
func (t Transition) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Transition) UnmarshalText(b []byte) error {
	v, err := ParseTransition(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// FormatTransitions joins transitions with a single space.
func FormatTransitions(ts []Transition) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// ParseTransitions is the inverse of FormatTransitions.
func ParseTransitions(s string) ([]Transition, error) {
	fields := strings.Fields(s)
	ts := make([]Transition, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTransition(f)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}
