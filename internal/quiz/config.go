package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Bounds on the number of questions a single quiz may request.
const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5
)

// Configuration is what the user submits to start a quiz.
type Configuration struct {
	Topic        string     `json:"topic" validate:"required,notblank"`
	Difficulty   Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	NumQuestions int        `json:"numQuestions" validate:"min=1,max=20"`
}

// DefaultConfiguration returns the form defaults: no topic, easy, 5 questions.
func DefaultConfiguration() Configuration {
	return Configuration{
		Difficulty:   DifficultyEasy,
		NumQuestions: DefaultQuestions,
	}
}

// ErrInvalidConfiguration is matched by every *ValidationError.
var ErrInvalidConfiguration = errors.New("invalid quiz configuration")

// FieldError describes one failed rule.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s: %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Rule)
}

// Message is a human-readable description of the failure.
func (f FieldError) Message() string {
	switch f.Field {
	case "topic":
		return "Topic is required."
	case "difficulty":
		return "Difficulty must be easy, medium or hard."
	case "numQuestions":
		return fmt.Sprintf("Number of questions must be between %d and %d.", MinQuestions, MaxQuestions)
	}
	return f.String()
}

// ValidationError lists every rule a Configuration failed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidConfiguration, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// Message returns the message for field, or "" when it passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message()
		}
	}
	return ""
}

// Has reports whether the given JSON field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks c and returns a *ValidationError when any rule fails.
func (c Configuration) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate configuration: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// Normalized returns c with the topic trimmed.
func (c Configuration) Normalized() Configuration {
	c.Topic = strings.TrimSpace(c.Topic)
	return c
}
