package cases

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

// Notifier delivers case mail. The engine never inspects delivery outcomes
// of new-case notifications; reminders report an error so the reminder
// record can carry a sent/failed status.
type Notifier interface {
	NotifyNewCase(c *database.Case, recipients []string)
	SendReminder(c *database.Case, email string) error
}

// Engine implements the case lifecycle: creation, partial update, deletion,
// reminder dispatch and identifier resolution.
type Engine struct {
	db       *gorm.DB
	logger   *logger.Logger
	notifier Notifier

	// Hearing-date proximity window for NeedsReminder
	windowDays int

	// When set, sub-department deletion also checks the plural
	// subDepartments references, not just the singular field
	guardPluralRefs bool
}

func NewEngine(db *gorm.DB, log *logger.Logger, notifier Notifier, windowDays int, guardPluralRefs bool) *Engine {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Engine{
		db:              db,
		logger:          log,
		notifier:        notifier,
		windowDays:      windowDays,
		guardPluralRefs: guardPluralRefs,
	}
}

// Create validates and persists a new case. When the case is associated
// with more than one sub-department a MultiSubCase record is upserted;
// failure of that secondary write is logged, never escalated. Notification
// dispatch happens after the case write and does not affect the result.
func (e *Engine) Create(input CreateInput) (*database.Case, error) {
	n := input.normalize()
	if verr := n.validate(); verr != nil {
		return nil, verr
	}

	caseNumber := n.CaseNumber
	if caseNumber == "" {
		caseNumber = fabricateCaseNumber(*n.FilingDate)
	}

	c := database.Case{
		CaseNumber:               caseNumber,
		PetitionerName:           n.PetitionerName,
		RespondentName:           n.RespondentName,
		FilingDate:               *n.FilingDate,
		PetitionNumber:           n.PetitionNumber,
		NoticeNumber:             n.NoticeNumber,
		WritType:                 n.WritType,
		Department:               n.Department,
		Status:                   n.Status,
		HearingDate:              n.HearingDate,
		AffidavitDueDate:         n.AffidavitDueDate,
		AffidavitSubmissionDate:  n.AffidavitSubmissionDate,
		CounterAffidavitRequired: n.CounterAffidavitRequired,
		UpdatedAt:                time.Now(),
	}
	if n.SubDepartment != "" {
		c.SubDepartmentID = &n.SubDepartment
	}

	if err := e.db.Omit("SubDepartments").Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	// Association rows are written directly so that a sub-department id
	// without a matching row behaves like the unchecked reference it is
	// for case creation.
	if err := e.replaceSubDepartmentRefs(c.ID, n.SubDepartments); err != nil {
		return nil, fmt.Errorf("failed to associate sub-departments: %w", err)
	}

	if len(n.SubDepartments) > 1 {
		multi := database.MultiSubCase{
			CaseID:         c.ID,
			SubDepartments: n.SubDepartments,
		}
		err := e.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sub_departments"}),
		}).Create(&multi).Error
		if err != nil {
			// Case creation already succeeded; the association record is
			// best-effort.
			e.logger.Error("Failed to record multi sub-department association",
				"case_id", c.ID, "error", err)
		}
	}

	created, err := e.getByID(c.ID)
	if err != nil {
		return nil, err
	}

	e.notifier.NotifyNewCase(created, input.NotifyEmails)

	return created, nil
}

// mutableCaseFields maps patch keys to the date/plain handling each needs.
// Reminder bookkeeping fields are deliberately absent; only the reminder
// dispatch path touches those.
var mutableCaseFields = map[string]string{
	"caseNumber":               "case_number",
	"petitionerName":           "petitioner_name",
	"petitionername":           "petitioner_name",
	"respondentName":           "respondent_name",
	"respondentname":           "respondent_name",
	"petitionNumber":           "petition_number",
	"noticeNumber":             "notice_number",
	"writType":                 "writ_type",
	"status":                   "status",
	"counterAffidavitRequired": "counter_affidavit_required",
}

var mutableCaseDateFields = map[string]string{
	"filingDate":              "filing_date",
	"hearingDate":             "hearing_date",
	"affidavitDueDate":        "affidavit_due_date",
	"affidavitSubmissionDate": "affidavit_submission_date",
}

// Update applies a partial patch to an existing case and touches updatedAt.
// Unknown keys are ignored. Status must remain within the enum. An empty
// string clears an optional date; an unparseable non-empty one is ignored.
func (e *Engine) Update(id string, patch map[string]interface{}) (*database.Case, error) {
	var existing database.Case
	if err := e.db.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	for key, column := range mutableCaseFields {
		v, ok := patch[key]
		if !ok {
			continue
		}
		if key == "status" {
			status, _ := v.(string)
			if status != database.StatusPending && status != database.StatusResolved {
				return nil, &ValidationError{Details: []string{"status (Pending or Resolved)"}}
			}
			updates[column] = status
			continue
		}
		updates[column] = v
	}

	for key, column := range mutableCaseDateFields {
		v, ok := patch[key]
		if !ok {
			continue
		}
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			if key == "filingDate" {
				return nil, &ValidationError{Details: []string{"filingDate (valid date)"}}
			}
			updates[column] = nil
			continue
		}
		if t := parseDate(s); t != nil {
			updates[column] = *t
		}
	}

	if v, ok := patch["department"]; ok {
		dept, deptOK := coerceDepartment(v)
		if !deptOK {
			return nil, &ValidationError{Details: []string{"department (number)"}}
		}
		updates["department"] = dept
	}

	if v, ok := patch["subDepartment"]; ok {
		s, _ := v.(string)
		if database.IsValidID(s) {
			updates["sub_department_id"] = s
		} else {
			updates["sub_department_id"] = nil
		}
	}

	if err := e.db.Model(&database.Case{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	if v, ok := patch["subDepartments"]; ok {
		ids := filterValidIDs(v)
		if err := e.replaceSubDepartmentRefs(id, ids); err != nil {
			return nil, fmt.Errorf("failed to update sub-department associations: %w", err)
		}
	}

	return e.getByID(id)
}

// Delete removes a case unconditionally. Association records and reminder
// history referencing the case are not checked or cleaned up.
func (e *Engine) Delete(id string) error {
	res := e.db.Delete(&database.Case{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete case: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := e.db.Exec(`DELETE FROM case_sub_departments WHERE case_id = ?`, id).Error; err != nil {
		return fmt.Errorf("failed to delete sub-department associations: %w", err)
	}

	return nil
}

// NeedsReminder reports whether a case should be highlighted for a hearing
// reminder: pending, hearing date set, and the hearing falls within the
// configured window (inclusive, days rounded up). This predicate never
// mutates reminder bookkeeping.
func (e *Engine) NeedsReminder(c *database.Case, now time.Time) bool {
	return NeedsReminder(c, now, e.windowDays)
}

// NeedsReminder is the window predicate with an explicit windowDays
func NeedsReminder(c *database.Case, now time.Time, windowDays int) bool {
	if c.Status != database.StatusPending || c.HearingDate == nil {
		return false
	}
	days := int(math.Ceil(c.HearingDate.Sub(now).Hours() / 24))
	return days >= 0 && days <= windowDays
}

// ResolveByIdentifier accepts either a 24-character hex identifier or a
// human-entered case number. Identifier lookup is tried first; on miss, the
// exact case number match (case-sensitive as stored).
func (e *Engine) ResolveByIdentifier(input string) (*database.Case, error) {
	if database.IsValidID(input) {
		c, err := e.getByID(input)
		if err == nil {
			return c, nil
		}
		if err != ErrNotFound {
			return nil, err
		}
	}

	var c database.Case
	err := e.db.Preload("SubDepartments").First(&c, "case_number = ?", input).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up case by number: %w", err)
	}
	return &c, nil
}

// SendReminder records a manually triggered reminder for a case and updates
// the case's reminder bookkeeping. The mail send is best-effort: a failure
// is captured in the reminder record's status, not returned as an error.
func (e *Engine) SendReminder(caseID, email string) (*database.EmailReminder, error) {
	c, err := e.getByID(caseID)
	if err != nil {
		return nil, err
	}

	status := database.ReminderStatusSent
	if err := e.notifier.SendReminder(c, email); err != nil {
		e.logger.Error("Failed to send reminder email",
			"case_id", caseID, "recipient", email, "error", err)
		status = database.ReminderStatusFailed
	}

	reminder := database.EmailReminder{
		CaseID: caseID,
		Email:  email,
		Status: status,
	}
	if err := e.db.Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("failed to record reminder: %w", err)
	}

	err = e.db.Model(&database.Case{}).Where("id = ?", caseID).Updates(map[string]interface{}{
		"reminder_sent":       true,
		"reminder_sent_count": gorm.Expr("reminder_sent_count + 1"),
		"last_reminder_sent":  time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder bookkeeping: %w", err)
	}

	return &reminder, nil
}

// RemindersForCase lists a case's reminder history, newest first
func (e *Engine) RemindersForCase(caseID string) ([]database.EmailReminder, error) {
	var reminders []database.EmailReminder
	err := e.db.Where("case_id = ?", caseID).Order("sent_at DESC").Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// MultiSub reports whether a case has a multi sub-department association
// and returns the associated sub-departments
func (e *Engine) MultiSub(caseID string) (bool, []database.SubDepartment, error) {
	var multi database.MultiSubCase
	err := e.db.First(&multi, "case_id = ?", caseID).Error
	if err == gorm.ErrRecordNotFound {
		return false, []database.SubDepartment{}, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("failed to look up association: %w", err)
	}

	var subDepts []database.SubDepartment
	if len(multi.SubDepartments) > 0 {
		if err := e.db.Where("id IN ?", []string(multi.SubDepartments)).Find(&subDepts).Error; err != nil {
			return false, nil, fmt.Errorf("failed to load sub-departments: %w", err)
		}
	}
	if subDepts == nil {
		subDepts = []database.SubDepartment{}
	}
	return true, subDepts, nil
}

func (e *Engine) getByID(id string) (*database.Case, error) {
	var c database.Case
	err := e.db.Preload("SubDepartments").First(&c, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}

// replaceSubDepartmentRefs rewrites the join rows for a case. Rows are
// written directly rather than through the association so syntactically
// valid but dangling identifiers are stored as-is.
func (e *Engine) replaceSubDepartmentRefs(caseID string, subDeptIDs []string) error {
	if err := e.db.Exec(`DELETE FROM case_sub_departments WHERE case_id = ?`, caseID).Error; err != nil {
		return err
	}
	for _, sdID := range subDeptIDs {
		err := e.db.Exec(
			`INSERT INTO case_sub_departments (case_id, sub_department_id) VALUES (?, ?)`,
			caseID, sdID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// fabricateCaseNumber generates a case number for submissions that omit one
func fabricateCaseNumber(filingDate time.Time) string {
	return fmt.Sprintf("CN-%d-%s", filingDate.Year(), uuid.New().String()[:8])
}

// filterValidIDs extracts the 24-hex ids from a JSON-decoded array value
func filterValidIDs(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var ids []string
	for _, item := range items {
		if s, ok := item.(string); ok && database.IsValidID(s) {
			ids = append(ids, s)
		}
	}
	return ids
}
