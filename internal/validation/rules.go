// Package validation provides the jellydator validation rules shared by the request DTOs
// and the artifact use case.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/examvault/internal/errors"
	"github.com/allisson/examvault/internal/storage"
)

// ExamDateLayout is the accepted exam date format.
const ExamDateLayout = "2006-01-02"

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength is an artifact password policy. Length is counted in runes.
// A zero MaxLength means no upper bound.
type PasswordStrength struct {
	MinLength      int
	MaxLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// DefaultPasswordPolicy is the policy applied when PASSWORD_POLICY_ENABLED is set.
var DefaultPasswordPolicy = PasswordStrength{
	MinLength:      8,
	MaxLength:      128,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

type charClasses struct {
	upper, lower, number, special bool
}

func classify(s string) charClasses {
	var c charClasses
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsNumber(r):
			c.number = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			c.special = true
		}
	}
	return c
}

// Validate implements validation.Rule. Length violations are reported alone; otherwise
// every missing character class is listed in a single error.
func (p PasswordStrength) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	length := len([]rune(s))
	if length < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}
	if p.MaxLength > 0 && length > p.MaxLength {
		return validation.NewError(
			"validation_password_max_length",
			fmt.Sprintf("password must not exceed %d characters", p.MaxLength),
		)
	}

	has := classify(s)
	var missing []string
	if p.RequireUpper && !has.upper {
		missing = append(missing, "an uppercase letter")
	}
	if p.RequireLower && !has.lower {
		missing = append(missing, "a lowercase letter")
	}
	if p.RequireNumber && !has.number {
		missing = append(missing, "a number")
	}
	if p.RequireSpecial && !has.special {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return validation.NewError(
			"validation_password_classes",
			"password must contain "+strings.Join(missing, ", "),
		)
	}

	return nil
}

// ExamDate validates a YYYY-MM-DD calendar date. Empty values pass; pair it with Required.
var ExamDate = validation.Date(ExamDateLayout).
	ErrorObject(validation.NewError("validation_exam_date", "must be a date in YYYY-MM-DD format"))

// AllowedExtension validates that a filename carries an accepted document extension.
var AllowedExtension = validation.NewStringRuleWithError(
	storage.ValidateExtension,
	validation.NewError(
		"validation_file_extension",
		"file type not allowed, expected one of "+strings.Join(storage.AllowedExtensions(), ", "),
	),
)
