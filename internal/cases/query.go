package cases

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
)

// ListFilters are the optional, AND-intersected case list filters
type ListFilters struct {
	Department    *int
	SubDepartment string
	Status        string
	Search        string
}

// Pagination describes one page of a list result
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListResult is a read-only snapshot of the filtered case set. Pagination
// is nil when the caller did not page.
type ListResult struct {
	Cases      []database.Case
	Pagination *Pagination
}

// List returns the filtered cases, newest first. Pagination applies only
// when both page and limit are positive; the total count is computed
// independently of the page slice.
func (e *Engine) List(filters ListFilters, page, limit int) (*ListResult, error) {
	result := &ListResult{}

	q := e.applyFilters(e.db.Model(&database.Case{}), filters)

	if page > 0 && limit > 0 {
		var total int64
		if err := e.applyFilters(e.db.Model(&database.Case{}), filters).Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count cases: %w", err)
		}
		result.Pagination = &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		}
		q = q.Offset((page - 1) * limit).Limit(limit)
	}

	var items []database.Case
	err := q.Preload("SubDepartments").Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	if items == nil {
		items = []database.Case{}
	}
	result.Cases = items
	return result, nil
}

func (e *Engine) applyFilters(q *gorm.DB, f ListFilters) *gorm.DB {
	if f.Department != nil {
		q = q.Where("department = ?", *f.Department)
	}
	if f.SubDepartment != "" && database.IsValidID(f.SubDepartment) {
		q = q.Where(
			"sub_department_id = ? OR id IN (SELECT case_id FROM case_sub_departments WHERE sub_department_id = ?)",
			f.SubDepartment, f.SubDepartment,
		)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(case_number) LIKE ? OR LOWER(petitioner_name) LIKE ? OR LOWER(petition_number) LIKE ?",
			like, like, like,
		)
	}
	return q
}

// DepartmentCount is one bucket of the department-grouped case breakdown
type DepartmentCount struct {
	Department int   `json:"department"`
	Count      int64 `json:"count"`
}

// Statistics is the dashboard aggregate
type Statistics struct {
	TotalCases          int64             `json:"totalCases"`
	PendingCases        int64             `json:"pendingCases"`
	ResolvedCases       int64             `json:"resolvedCases"`
	UpcomingHearings    int64             `json:"upcomingHearings"`
	TotalDepartments    int64             `json:"totalDepartments"`
	TotalSubDepartments int64             `json:"totalSubDepartments"`
	CasesByDepartment   []DepartmentCount `json:"casesByDepartment"`
	RecentCases         []database.Case   `json:"recentCases"`
}

// Stats computes the dashboard aggregate. Pure read-side, no side effects.
func (e *Engine) Stats() (*Statistics, error) {
	stats := &Statistics{
		CasesByDepartment: []DepartmentCount{},
		RecentCases:       []database.Case{},
	}

	if err := e.db.Model(&database.Case{}).Count(&stats.TotalCases).Error; err != nil {
		return nil, fmt.Errorf("failed to count cases: %w", err)
	}
	if err := e.db.Model(&database.Case{}).Where("status = ?", database.StatusPending).Count(&stats.PendingCases).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending cases: %w", err)
	}
	if err := e.db.Model(&database.Case{}).Where("status = ?", database.StatusResolved).Count(&stats.ResolvedCases).Error; err != nil {
		return nil, fmt.Errorf("failed to count resolved cases: %w", err)
	}
	if err := e.db.Model(&database.Department{}).Count(&stats.TotalDepartments).Error; err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	if err := e.db.Model(&database.SubDepartment{}).Count(&stats.TotalSubDepartments).Error; err != nil {
		return nil, fmt.Errorf("failed to count sub-departments: %w", err)
	}

	// Pending cases whose hearing falls inside the reminder window. The
	// window arithmetic lives in NeedsReminder, so the count is filtered in
	// Go rather than approximated in SQL.
	var pendingWithHearing []database.Case
	err := e.db.Where("status = ? AND hearing_date IS NOT NULL", database.StatusPending).
		Find(&pendingWithHearing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending hearings: %w", err)
	}
	now := time.Now()
	for i := range pendingWithHearing {
		if e.NeedsReminder(&pendingWithHearing[i], now) {
			stats.UpcomingHearings++
		}
	}

	err = e.db.Model(&database.Case{}).
		Select("department, COUNT(*) as count").
		Group("department").
		Order("department ASC").
		Scan(&stats.CasesByDepartment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group cases by department: %w", err)
	}

	err = e.db.Order("created_at DESC").Limit(5).Find(&stats.RecentCases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent cases: %w", err)
	}

	return stats, nil
}
