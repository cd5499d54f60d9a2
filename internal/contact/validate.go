// Package contact holds the contact form schema shared by the HTTP handler,
// the server-rendered form and the Go client.
package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"portfolio/internal/model"
)

type simpleSchema struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type extendedSchema struct {
	Name         string `json:"name" validate:"min=2"`
	Email        string `json:"email" validate:"required,email"`
	ProjectType  string `json:"projectType" validate:"oneof=web ml mobile other"`
	Budget       string `json:"budget" validate:"oneof=under-500 500-1000 1000-5000 5000+"`
	Timeline     string `json:"timeline" validate:"oneof=urgent week month flexible"`
	Requirements string `json:"requirements" validate:"min=10"`
}

var messages = map[string]string{
	"name":         "Name must be at least 2 characters",
	"email":        "Invalid email address",
	"message":      "Please enter a message",
	"projectType":  "Please select project type",
	"budget":       "Please select budget range",
	"timeline":     "Please select timeline",
	"requirements": "Please provide detailed requirements",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePresence is the minimal server check: email and the free-text
// field (message or requirements) must be present.
func ValidatePresence(sub model.Submission) error {
	sub = sub.Trimmed()

	fields := make(map[string]string)
	if sub.Email == "" {
		fields["email"] = "Required"
	}
	if sub.MessageText() == "" {
		if sub.Variant() == model.VariantExtended {
			fields["requirements"] = "Required"
		} else {
			fields["message"] = "Required"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Message: MsgMissingFields, Fields: fields}
	}
	return nil
}

// Validate applies the full schema of the submission's variant. Phone is
// never constrained.
func Validate(sub model.Submission) error {
	sub = sub.Trimmed()
	if sub.Variant() == model.VariantExtended {
		return ValidateExtended(sub)
	}
	return ValidateSimple(sub)
}

// ValidateSimple checks the {name, email, message} form.
func ValidateSimple(sub model.Submission) error {
	sub = sub.Trimmed()
	return check(simpleSchema{Email: sub.Email, Message: sub.Message})
}

// ValidateExtended checks the project-brief form regardless of which
// fields are filled in.
func ValidateExtended(sub model.Submission) error {
	sub = sub.Trimmed()
	return check(extendedSchema{
		Name:         sub.Name,
		Email:        sub.Email,
		ProjectType:  string(sub.ProjectType),
		Budget:       string(sub.Budget),
		Timeline:     string(sub.Timeline),
		Requirements: sub.Requirements,
	})
}

func check(schema any) error {
	err := validate.Struct(schema)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messages[fe.Field()]
	}
	return &ValidationError{Message: "Invalid submission", Fields: fields}
}

// Check runs ValidatePresence then Validate.
func Check(sub model.Submission) error {
	if err := ValidatePresence(sub); err != nil {
		return err
	}
	return Validate(sub)
}
