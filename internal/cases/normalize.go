package cases

import (
	"strconv"
	"strings"
	"time"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
)

// CreateInput is the raw case-creation payload. Both the canonical camelCase
// spellings and the legacy all-lowercase ones are accepted; camelCase wins
// when both are present. Dates arrive as strings and are parsed during
// normalization.
type CreateInput struct {
	CaseNumber     string `json:"caseNumber"`
	PetitionerName string `json:"petitionerName"`
	RespondentName string `json:"respondentName"`

	// Legacy spellings kept for older clients
	LegacyPetitionerName string `json:"petitionername"`
	LegacyRespondentName string `json:"respondentname"`

	FilingDate     string `json:"filingDate"`
	PetitionNumber string `json:"petitionNumber"`
	NoticeNumber   string `json:"noticeNumber"`
	WritType       string `json:"writType"`

	// Number or numeric string
	Department interface{} `json:"department"`

	SubDepartment  string   `json:"subDepartment"`
	SubDepartments []string `json:"subDepartments"`

	Status                   string `json:"status"`
	HearingDate              string `json:"hearingDate"`
	AffidavitDueDate         string `json:"affidavitDueDate"`
	AffidavitSubmissionDate  string `json:"affidavitSubmissionDate"`
	CounterAffidavitRequired bool   `json:"counterAffidavitRequired"`

	// Recipient addresses for the new-case notification, one per newly
	// associated sub-department
	NotifyEmails []string `json:"notifyEmails"`
}

// normalized is the canonical form a create payload takes before validation
type normalized struct {
	CaseNumber     string
	PetitionerName string
	RespondentName string

	FilingDate *time.Time

	PetitionNumber string
	NoticeNumber   string
	WritType       string

	Department   int
	DepartmentOK bool

	SubDepartment  string
	SubDepartments []string

	Status                   string
	HearingDate              *time.Time
	AffidavitDueDate         *time.Time
	AffidavitSubmissionDate  *time.Time
	CounterAffidavitRequired bool
}

// acceptedDateLayouts are the wire forms a date field may take
var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// parseDate parses a date string; invalid or empty input collapses to nil
// rather than raising an error. Only filingDate is hard-required, and that
// is enforced by validation, not here.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// coerceDepartment accepts a JSON number or a numeric string
func coerceDepartment(v interface{}) (int, bool) {
	switch d := v.(type) {
	case float64:
		return int(d), true
	case int:
		return d, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(d))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// normalize canonicalizes every accepted spelling and shape into one
// internal form. All aliasing lives here so validation and persistence see
// a single vocabulary.
func (in *CreateInput) normalize() normalized {
	n := normalized{
		CaseNumber:               strings.TrimSpace(in.CaseNumber),
		PetitionerName:           strings.TrimSpace(in.PetitionerName),
		RespondentName:           strings.TrimSpace(in.RespondentName),
		PetitionNumber:           strings.TrimSpace(in.PetitionNumber),
		NoticeNumber:             strings.TrimSpace(in.NoticeNumber),
		WritType:                 strings.TrimSpace(in.WritType),
		Status:                   strings.TrimSpace(in.Status),
		CounterAffidavitRequired: in.CounterAffidavitRequired,
	}

	if n.PetitionerName == "" {
		n.PetitionerName = strings.TrimSpace(in.LegacyPetitionerName)
	}
	if n.RespondentName == "" {
		n.RespondentName = strings.TrimSpace(in.LegacyRespondentName)
	}

	n.Department, n.DepartmentOK = coerceDepartment(in.Department)

	n.FilingDate = parseDate(in.FilingDate)
	n.HearingDate = parseDate(in.HearingDate)
	n.AffidavitDueDate = parseDate(in.AffidavitDueDate)
	n.AffidavitSubmissionDate = parseDate(in.AffidavitSubmissionDate)

	// Keep only syntactically valid identifiers; anything else is dropped
	for _, id := range in.SubDepartments {
		if database.IsValidID(id) {
			n.SubDepartments = append(n.SubDepartments, id)
		}
	}

	// The singular field defaults to the first associated sub-department
	n.SubDepartment = strings.TrimSpace(in.SubDepartment)
	if n.SubDepartment == "" && len(n.SubDepartments) > 0 {
		n.SubDepartment = n.SubDepartments[0]
	}
	if n.SubDepartment != "" && !database.IsValidID(n.SubDepartment) {
		n.SubDepartment = ""
	}

	if n.Status == "" {
		n.Status = database.StatusPending
	}

	return n
}

// validate returns the structured list of missing or invalid required fields
func (n *normalized) validate() *ValidationError {
	var missing []string
	if n.PetitionerName == "" {
		missing = append(missing, "petitionerName")
	}
	if n.RespondentName == "" {
		missing = append(missing, "respondentName")
	}
	if n.FilingDate == nil {
		missing = append(missing, "filingDate (valid date)")
	}
	if !n.DepartmentOK {
		missing = append(missing, "department (number)")
	}
	if n.Status != database.StatusPending && n.Status != database.StatusResolved {
		missing = append(missing, "status (Pending or Resolved)")
	}
	if len(missing) > 0 {
		return &ValidationError{Details: missing}
	}
	return nil
}
