package config

import (
	"errors"
	"fmt"
	"slices"
)

// PlaceholderPolicy is action taken when page template does not have
// placeholder for a slot.
type PlaceholderPolicy int

const (
	PlaceholderPolicyIgnore PlaceholderPolicy = iota
	PlaceholderPolicyWarn
	PlaceholderPolicyFail
)

var ErrInvalidPlaceholderPolicy = errors.New("not a valid PlaceholderPolicy")

var placeholderPolicyNames = []string{"ignore", "warn", "fail"}

// PlaceholderPolicyNames returns a list of possible string values of PlaceholderPolicy.
func PlaceholderPolicyNames() []string {
	return slices.Clone(placeholderPolicyNames)
}

func (x PlaceholderPolicy) String() string {
	if x.IsValid() {
		return placeholderPolicyNames[x]
	}
	return fmt.Sprintf("PlaceholderPolicy(%d)", int(x))
}

func (x PlaceholderPolicy) IsValid() bool {
	return x >= 0 && int(x) < len(placeholderPolicyNames)
}

// ParsePlaceholderPolicy attempts to convert a string to a PlaceholderPolicy.
func ParsePlaceholderPolicy(name string) (PlaceholderPolicy, error) {
	if i := slices.Index(placeholderPolicyNames, name); i >= 0 {
		return PlaceholderPolicy(i), nil
	}
	return PlaceholderPolicy(0), fmt.Errorf("%s is %w", name, ErrInvalidPlaceholderPolicy)
}

func (x PlaceholderPolicy) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *PlaceholderPolicy) UnmarshalText(text []byte) error {
	v, err := ParsePlaceholderPolicy(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
