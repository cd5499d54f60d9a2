package client

import (
	"context"
	"errors"
	"fmt"

	"portfolio/internal/contact"
	"portfolio/internal/model"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "error"
)

// Sender delivers one submission; *Client implements it.
type Sender interface {
	Send(ctx context.Context, sub model.Submission) (*model.SubmissionResult, error)
}

// Form is the contact form state for either site variant. It is not safe
// for concurrent use.
type Form struct {
	sender     Sender
	ownerEmail string
	variant    model.Variant

	values model.Submission
	errors map[string]string
	status Status
	banner string
}

// NewForm returns the project-brief form.
func NewForm(sender Sender, ownerEmail string) *Form {
	return newForm(sender, ownerEmail, model.VariantExtended)
}

// NewSimpleForm returns the name/email/message form.
func NewSimpleForm(sender Sender, ownerEmail string) *Form {
	return newForm(sender, ownerEmail, model.VariantSimple)
}

func newForm(sender Sender, ownerEmail string, variant model.Variant) *Form {
	return &Form{
		sender:     sender,
		ownerEmail: ownerEmail,
		variant:    variant,
		status:     StatusIdle,
	}
}

// Set updates one field by its JSON name and clears that field's error.
// Only the fields of the form's variant are accepted.
func (f *Form) Set(field, value string) error {
	switch field {
	case "name":
		f.values.Name = value
		delete(f.errors, field)
		return nil
	case "email":
		f.values.Email = value
		delete(f.errors, field)
		return nil
	}
	if f.variant == model.VariantSimple {
		if field != "message" {
			return fmt.Errorf("unknown field %q", field)
		}
		f.values.Message = value
		delete(f.errors, field)
		return nil
	}

	switch field {
	case "phone":
		f.values.Phone = value
	case "projectType":
		f.values.ProjectType = model.ProjectType(value)
	case "budget":
		f.values.Budget = model.Budget(value)
	case "timeline":
		f.values.Timeline = model.Timeline(value)
	case "requirements":
		f.values.Requirements = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	delete(f.errors, field)
	return nil
}

// Submit validates locally and, when valid, sends exactly one request.
//
// Invalid input sets field errors and leaves the status unchanged. A sent
// submission ends in StatusSuccess with the fields cleared, or StatusFailed
// with the fields kept so the user can try again. The returned error is the
// validation or send error, if any.
func (f *Form) Submit(ctx context.Context) error {
	if f.status == StatusSending {
		return errors.New("submission already in progress")
	}

	validate := contact.ValidateExtended
	if f.variant == model.VariantSimple {
		validate = contact.ValidateSimple
	}
	if err := validate(f.values); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			f.errors = verr.Fields
		}
		return err
	}
	f.errors = nil

	f.status = StatusSending
	_, err := f.sender.Send(ctx, f.values.Trimmed())
	if err != nil {
		f.status = StatusFailed
		f.banner = contact.ErrorBanner(f.ownerEmail)
		return err
	}

	f.status = StatusSuccess
	f.banner = contact.SuccessBanner(f.ownerEmail)
	f.values = model.Submission{}
	return nil
}

// Dismiss hides the banner and returns to idle.
func (f *Form) Dismiss() {
	if f.status == StatusSending {
		return
	}
	f.status = StatusIdle
	f.banner = ""
}

func (f *Form) Variant() model.Variant   { return f.variant }
func (f *Form) Values() model.Submission { return f.values }
func (f *Form) Status() Status           { return f.status }
func (f *Form) Banner() string           { return f.banner }

// Errors returns a copy of the per-field messages.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}
