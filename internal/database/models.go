package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Case status values
const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
)

// Email reminder delivery status values
const (
	ReminderStatusSent   = "sent"
	ReminderStatusFailed = "failed"
)

// Case is a tracked legal matter routed to a department
type Case struct {
	ID                       string          `gorm:"primaryKey;size:24" json:"id"`
	CaseNumber               string          `gorm:"index" json:"caseNumber,omitempty"`
	PetitionerName           string          `gorm:"not null" json:"petitionerName"`
	RespondentName           string          `gorm:"not null" json:"respondentName"`
	FilingDate               time.Time       `gorm:"not null" json:"filingDate"`
	PetitionNumber           string          `json:"petitionNumber,omitempty"`
	NoticeNumber             string          `json:"noticeNumber,omitempty"`
	WritType                 string          `json:"writType,omitempty"`
	Department               int             `gorm:"not null" json:"department"`
	SubDepartmentID          *string         `gorm:"size:24" json:"subDepartment,omitempty"`
	SubDepartments           []SubDepartment `gorm:"many2many:case_sub_departments" json:"subDepartments"`
	Status                   string          `gorm:"default:Pending" json:"status"`
	HearingDate              *time.Time      `json:"hearingDate,omitempty"`
	ReminderSent             bool            `gorm:"default:false" json:"reminderSent"`
	ReminderSentCount        int             `gorm:"default:0" json:"reminderSentCount"`
	LastReminderSent         *time.Time      `json:"lastReminderSent,omitempty"`
	AffidavitDueDate         *time.Time      `json:"affidavitDueDate,omitempty"`
	AffidavitSubmissionDate  *time.Time      `json:"affidavitSubmissionDate,omitempty"`
	CounterAffidavitRequired bool            `gorm:"default:false" json:"counterAffidavitRequired"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// Department is an administrative unit. Its integer id is assigned by the
// district office, not generated.
type Department struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	NameEn    string    `gorm:"column:name_en;not null" json:"name_en"`
	NameHi    string    `gorm:"column:name_hi;not null" json:"name_hi"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubDepartment belongs to exactly one Department
type SubDepartment struct {
	ID           string    `gorm:"primaryKey;size:24" json:"id"`
	DepartmentID int       `gorm:"not null" json:"departmentId"`
	NameEn       string    `gorm:"column:name_en;not null" json:"name_en"`
	NameHi       string    `gorm:"column:name_hi;not null" json:"name_hi"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *SubDepartment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// MultiSubCase flags a case associated with more than one sub-department.
// At most one record exists per case.
type MultiSubCase struct {
	ID             string                       `gorm:"primaryKey;size:24" json:"id"`
	CaseID         string                       `gorm:"size:24;not null;uniqueIndex" json:"caseId"`
	SubDepartments datatypes.JSONSlice[string] `json:"subDepartments"`
	CreatedAt      time.Time                    `json:"createdAt"`
}

func (m *MultiSubCase) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

// EmailReminder records a manually triggered reminder for a case.
// Immutable after creation.
type EmailReminder struct {
	ID     string    `gorm:"primaryKey;size:24" json:"id"`
	CaseID string    `gorm:"size:24;not null" json:"caseId"`
	Email  string    `gorm:"not null" json:"email"`
	SentAt time.Time `json:"sentAt"`
	Status string    `gorm:"default:sent" json:"status"`
}

func (e *EmailReminder) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now()
	}
	if e.Status == "" {
		e.Status = ReminderStatusSent
	}
	return nil
}

// Admin is a portal administrator account, seeded once
type Admin struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}

func (Case) TableName() string {
	return "cases"
}

func (Department) TableName() string {
	return "departments"
}

func (SubDepartment) TableName() string {
	return "sub_departments"
}

func (MultiSubCase) TableName() string {
	return "multi_sub_cases"
}

func (EmailReminder) TableName() string {
	return "email_reminders"
}

func (Admin) TableName() string {
	return "admins"
}
