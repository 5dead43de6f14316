package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validateInst *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks cfg against its struct tags and reports the first failing
// field in dotted lower-case form, e.g. "config.theme.default".
func Validate(cfg Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return fmt.Errorf("invalid configuration: %s failed validation for tag '%s'", fieldName(fe), fe.Tag())
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.StructNamespace())
}
