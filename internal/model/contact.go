package model

import (
	"fmt"
	"strings"
)

type Variant string

const (
	VariantSimple   Variant = "simple"
	VariantExtended Variant = "extended"
)

type ProjectType string

const (
	ProjectWeb    ProjectType = "web"
	ProjectML     ProjectType = "ml"
	ProjectMobile ProjectType = "mobile"
	ProjectOther  ProjectType = "other"
)

type Budget string

const (
	BudgetUnder500 Budget = "under-500"
	Budget500To1k  Budget = "500-1000"
	Budget1kTo5k   Budget = "1000-5000"
	BudgetOver5k   Budget = "5000+"
)

type Timeline string

const (
	TimelineUrgent   Timeline = "urgent"
	TimelineWeek     Timeline = "week"
	TimelineMonth    Timeline = "month"
	TimelineFlexible Timeline = "flexible"
)

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

var (
	ProjectTypeOptions = []Option{
		{string(ProjectWeb), "Web Development"},
		{string(ProjectML), "Machine Learning"},
		{string(ProjectMobile), "Mobile App"},
		{string(ProjectOther), "Other"},
	}
	BudgetOptions = []Option{
		{string(BudgetUnder500), "Under $500"},
		{string(Budget500To1k), "$500 - $1,000"},
		{string(Budget1kTo5k), "$1,000 - $5,000"},
		{string(BudgetOver5k), "$5,000+"},
	}
	TimelineOptions = []Option{
		{string(TimelineUrgent), "Urgent (ASAP)"},
		{string(TimelineWeek), "Within a week"},
		{string(TimelineMonth), "Within a month"},
		{string(TimelineFlexible), "Flexible"},
	}
)

func (p ProjectType) Valid() bool { return hasOption(ProjectTypeOptions, string(p)) }
func (b Budget) Valid() bool { return hasOption(BudgetOptions, string(b)) }
func (t Timeline) Valid() bool { return hasOption(TimelineOptions, string(t)) }

func (p ProjectType) Label() string { return label(ProjectTypeOptions, string(p)) }
func (b Budget) Label() string { return label(BudgetOptions, string(b)) }
func (t Timeline) Label() string { return label(TimelineOptions, string(t)) }

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

func label(opts []Option, v string) string {
	for _, o := range opts {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

// Submission is one contact form payload. It covers both the short
// {name, email, message} form and the project-brief form.
type Submission struct {
	Name         string      `json:"name" form:"name"`
	Email        string      `json:"email" form:"email"`
	Phone        string      `json:"phone,omitempty" form:"phone"`
	Message      string      `json:"message,omitempty" form:"message"`
	ProjectType  ProjectType `json:"projectType,omitempty" form:"projectType"`
	Budget       Budget      `json:"budget,omitempty" form:"budget"`
	Timeline     Timeline    `json:"timeline,omitempty" form:"timeline"`
	Requirements string      `json:"requirements,omitempty" form:"requirements"`
}

// Variant reports which form produced the submission.
func (s Submission) Variant() Variant {
	if s.Requirements != "" || s.ProjectType != "" || s.Budget != "" || s.Timeline != "" {
		return VariantExtended
	}
	return VariantSimple
}

// MessageText returns the free-text part: message or requirements.
func (s Submission) MessageText() string {
	if s.Variant() == VariantExtended {
		return s.Requirements
	}
	return s.Message
}

// Body renders the mail body sent to the site owner.
func (s Submission) Body() string {
	if s.Variant() == VariantSimple {
		return s.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", s.Name, s.Email)
	if s.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", s.Phone)
	}
	fmt.Fprintf(&b, "Project type: %s\nBudget: %s\nTimeline: %s\n\n",
		s.ProjectType.Label(), s.Budget.Label(), s.Timeline.Label())
	b.WriteString(s.Requirements)
	return b.String()
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s Submission) Trimmed() Submission {
	return Submission{
		Name:         strings.TrimSpace(s.Name),
		Email:        strings.TrimSpace(s.Email),
		Phone:        strings.TrimSpace(s.Phone),
		Message:      strings.TrimSpace(s.Message),
		ProjectType:  ProjectType(strings.TrimSpace(string(s.ProjectType))),
		Budget:       Budget(strings.TrimSpace(string(s.Budget))),
		Timeline:     Timeline(strings.TrimSpace(string(s.Timeline))),
		Requirements: strings.TrimSpace(s.Requirements),
	}
}

// SubmissionResult is the JSON body of every /api/contact response.
// Success and OK always carry the same value.
type SubmissionResult struct {
	Success bool              `json:"success"`
	OK      bool              `json:"ok"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Succeeded(message string) *SubmissionResult {
	return &SubmissionResult{Success: true, OK: true, Message: message}
}

func Failed(message string) *SubmissionResult {
	return &SubmissionResult{Message: message}
}

func Rejected(errMsg string, fields map[string]string) *SubmissionResult {
	return &SubmissionResult{Error: errMsg, Fields: fields}
}
