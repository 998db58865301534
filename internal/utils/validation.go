package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports a configuration value that failed a check
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return "invalid value: " + e.Message
}

// Validator checks a single value
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a chain from validators
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator and returns the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate returns the first failure
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// check builds a validator from a predicate
func check[T any](field, message string, ok func(T) bool) Validator[T] {
	return func(value T) error {
		if ok(value) {
			return nil
		}
		return ValidationError{Field: field, Value: value, Message: message}
	}
}

// NotEmpty rejects blank strings
func NotEmpty(field string) Validator[string] {
	return check(field, "cannot be empty", func(value string) bool {
		return strings.TrimSpace(value) != ""
	})
}

// HasPrefix requires a string prefix, such as the dot of a file extension
func HasPrefix(field, prefix string) Validator[string] {
	return check(field, fmt.Sprintf("must start with '%s'", prefix), func(value string) bool {
		return strings.HasPrefix(value, prefix)
	})
}

var qualifiedNamePattern = regexp.MustCompile(`^(?:[A-Za-z_]\w*::)*[A-Za-z_]\w*(?:::)?$`)

// IsQualifiedName accepts a C++ name such as nayan::validation or nayan::validation::
func IsQualifiedName(field string) Validator[string] {
	return check(field, "must be a C++ name such as ns::inner::", qualifiedNamePattern.MatchString)
}

// IsOneOf requires one of the allowed values
func IsOneOf[T comparable](field string, allowed ...T) Validator[T] {
	return check(field, fmt.Sprintf("must be one of %v", allowed), func(value T) bool {
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	})
}

// InRange requires an int within [min, max]
func InRange(field string, min, max int) Validator[int] {
	return check(field, fmt.Sprintf("must be between %d and %d", min, max), func(value int) bool {
		return value >= min && value <= max
	})
}

// SliceNotEmpty rejects an empty list
func SliceNotEmpty[T any](field string) Validator[[]T] {
	return check(field, "cannot be empty", func(value []T) bool {
		return len(value) > 0
	})
}

// ValidateEach applies itemValidator to every element, naming the failing index
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(value []T) error {
		for i, item := range value {
			if err := itemValidator(item); err != nil {
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: err.Error(),
				}
			}
		}
		return nil
	}
}
