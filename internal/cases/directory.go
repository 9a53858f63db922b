package cases

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
)

// Department and sub-department operations live on the engine so the
// referential invariants stay next to the case lifecycle that depends on
// them.

// CreateDepartment registers a department under its office-assigned integer
// id. A duplicate id is rejected.
func (e *Engine) CreateDepartment(id int, nameEn, nameHi string) (*database.Department, error) {
	nameEn = strings.TrimSpace(nameEn)
	nameHi = strings.TrimSpace(nameHi)

	var missing []string
	if nameEn == "" {
		missing = append(missing, "name_en")
	}
	if nameHi == "" {
		missing = append(missing, "name_hi")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Details: missing}
	}

	var existing database.Department
	err := e.db.First(&existing, "id = ?", id).Error
	if err == nil {
		return nil, ErrDuplicateDepartment
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check department: %w", err)
	}

	dept := database.Department{ID: id, NameEn: nameEn, NameHi: nameHi}
	if err := e.db.Create(&dept).Error; err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return &dept, nil
}

// ListDepartments returns every department ordered by id
func (e *Engine) ListDepartments() ([]database.Department, error) {
	var depts []database.Department
	if err := e.db.Order("id ASC").Find(&depts).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

// GetDepartment fetches a department by its integer id
func (e *Engine) GetDepartment(id int) (*database.Department, error) {
	var dept database.Department
	err := e.db.First(&dept, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load department: %w", err)
	}
	return &dept, nil
}

// CreateSubDepartment requires the parent department to exist
func (e *Engine) CreateSubDepartment(departmentID int, nameEn, nameHi string) (*database.SubDepartment, error) {
	if _, err := e.GetDepartment(departmentID); err != nil {
		return nil, err
	}

	sd := database.SubDepartment{
		DepartmentID: departmentID,
		NameEn:       strings.TrimSpace(nameEn),
		NameHi:       strings.TrimSpace(nameHi),
	}
	if err := e.db.Create(&sd).Error; err != nil {
		return nil, fmt.Errorf("failed to create sub-department: %w", err)
	}
	return &sd, nil
}

// ListSubDepartments returns sub-departments, optionally scoped to one
// department, newest first
func (e *Engine) ListSubDepartments(departmentID *int) ([]database.SubDepartment, error) {
	q := e.db.Order("created_at DESC")
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	var subDepts []database.SubDepartment
	if err := q.Find(&subDepts).Error; err != nil {
		return nil, fmt.Errorf("failed to list sub-departments: %w", err)
	}
	return subDepts, nil
}

// GetSubDepartment fetches a sub-department by identifier
func (e *Engine) GetSubDepartment(id string) (*database.SubDepartment, error) {
	var sd database.SubDepartment
	err := e.db.First(&sd, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sub-department: %w", err)
	}
	return &sd, nil
}

// UpdateSubDepartment patches the bilingual names of a sub-department
func (e *Engine) UpdateSubDepartment(id string, nameEn, nameHi *string) (*database.SubDepartment, error) {
	sd, err := e.GetSubDepartment(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if nameEn != nil {
		updates["name_en"] = strings.TrimSpace(*nameEn)
	}
	if nameHi != nil {
		updates["name_hi"] = strings.TrimSpace(*nameHi)
	}
	if len(updates) > 0 {
		if err := e.db.Model(sd).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update sub-department: %w", err)
		}
	}
	return e.GetSubDepartment(id)
}

// DeleteSubDepartment removes a sub-department unless cases still reference
// it. The singular reference is always checked; the plural references only
// when the engine was configured to guard them.
func (e *Engine) DeleteSubDepartment(id string) error {
	var count int64
	err := e.db.Model(&database.Case{}).Where("sub_department_id = ?", id).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check case references: %w", err)
	}
	if count > 0 {
		return ErrSubDepartmentInUse
	}

	if e.guardPluralRefs {
		err := e.db.Table("case_sub_departments").Where("sub_department_id = ?", id).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check plural case references: %w", err)
		}
		if count > 0 {
			return ErrSubDepartmentInUse
		}
	}

	res := e.db.Delete(&database.SubDepartment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete sub-department: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
