package cases

import (
	"errors"
	"strings"
)

// ErrNotFound signals that an identifier resolved to no entity
var ErrNotFound = errors.New("not found")

// ErrSubDepartmentInUse signals a sub-department delete blocked by cases
// that still reference it
var ErrSubDepartmentInUse = errors.New("sub-department has associated cases")

// ErrDuplicateDepartment signals a department create with an id already taken
var ErrDuplicateDepartment = errors.New("department with this id already exists")

// ValidationError carries the names of the missing or invalid fields of a
// rejected write
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Details, ", ")
}
