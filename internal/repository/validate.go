package repository

import (
	"fmt"
	"net"
	"net/mail"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/shopspring/decimal"
)

func enumSet[S ~string](values []S) set.Strings {
	out := set.NewStrings()
	for _, v := range values {
		out.Add(string(v))
	}
	return out
}

func enumKeys[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func notValid(format string, args ...any) error {
	return errors.NewNotValid(nil, fmt.Sprintf(format, args...))
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return notValid("%s is required", name)
	}
	return nil
}

func requiredID(name string, id int) error {
	if id <= 0 {
		return notValid("%s is required", name)
	}
	return nil
}

// oneOf accepts an empty value; pair it with required when the field is
// mandatory.
func oneOf(name, value string, allowed set.Strings) error {
	if value == "" || allowed.Contains(value) {
		return nil
	}
	return notValid("%s %q is not one of %s", name, value, strings.Join(allowed.SortedValues(), ", "))
}

func nonNegative(name string, d decimal.Decimal) error {
	if d.IsNegative() {
		return notValid("%s must not be negative", name)
	}
	return nil
}

func nonNegativeInt(name string, v int) error {
	if v < 0 {
		return notValid("%s must not be negative", name)
	}
	return nil
}

func validEmail(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return notValid("%s %q is not a valid address", name, value)
	}
	return nil
}

func validIP(name, value string) error {
	if net.ParseIP(value) == nil {
		return notValid("%s %q is not a valid IP address", name, value)
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
