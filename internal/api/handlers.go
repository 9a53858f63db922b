package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cache"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cases"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/config"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/mailer"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

// defaultAdminAccounts are the bootstrap portal logins created by /admin/seed
var defaultAdminAccounts = map[string]string{
	"admincourt@gmail.com": "Admin@123",
	"courtadmin@gmail.com": "Admin2@123",
}

// Handlers holds all HTTP handlers
type Handlers struct {
	db     *gorm.DB
	engine *cases.Engine
	cache  cache.Cache
	mailer *mailer.Mailer
	logger *logger.Logger
	cfg    *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, engine *cases.Engine, cache cache.Cache, mailer *mailer.Mailer, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		db:     db,
		engine: engine,
		cache:  cache,
		mailer: mailer,
		logger: logger,
		cfg:    cfg,
	}
}

// HealthCheck reports service status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":        "Backend is running",
		"version":        "1.0.0",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"mailConfigured": h.cfg.MailConfigured(),
		"cache":          h.cache.Stats(),
	})
}

// CacheStats exposes the lookup cache counters
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Stats())
}

// ===== CASE ENDPOINTS =====

// ListCases handles filtering and pagination of the case list
func (h *Handlers) ListCases(c *gin.Context) {
	var filters cases.ListFilters

	if dept := c.Query("department"); dept != "" {
		d, err := strconv.Atoi(dept)
		if err == nil {
			filters.Department = &d
		}
	}
	filters.SubDepartment = c.Query("subDepartment")
	filters.Status = c.Query("status")
	filters.Search = c.Query("search")

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.engine.List(filters, page, limit)
	if err != nil {
		h.logger.Error("Failed to list cases", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cases"})
		return
	}

	var pagination interface{}
	if result.Pagination != nil {
		pagination = result.Pagination
	}
	c.JSON(http.StatusOK, gin.H{
		"cases":      result.Cases,
		"pagination": pagination,
	})
}

// GetCase fetches a case by store identifier or case number
func (h *Handlers) GetCase(c *gin.Context) {
	caseData, err := h.engine.ResolveByIdentifier(c.Param("input"))
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Case not found"})
			return
		}
		h.logger.Error("Failed to fetch case", "input", c.Param("input"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch case"})
		return
	}
	c.JSON(http.StatusOK, caseData)
}

// CreateCase creates a new case
func (h *Handlers) CreateCase(c *gin.Context) {
	var input cases.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.engine.Create(input)
	if err != nil {
		var verr *cases.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing or invalid fields",
				"details": verr.Details,
			})
			return
		}
		h.logger.Error("Failed to create case", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create case"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateCase applies a partial patch to a case
func (h *Handlers) UpdateCase(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.engine.Update(c.Param("input"), patch)
	if err != nil {
		var verr *cases.ValidationError
		switch {
		case errors.Is(err, cases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing or invalid fields",
				"details": verr.Details,
			})
		default:
			h.logger.Error("Failed to update case", "case_id", c.Param("input"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update case"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCase removes a case unconditionally
func (h *Handlers) DeleteCase(c *gin.Context) {
	if err := h.engine.Delete(c.Param("input")); err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
			return
		}
		h.logger.Error("Failed to delete case", "case_id", c.Param("input"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete case"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Case deleted successfully"})
}

// GetMultiSub reports whether a case is associated with multiple
// sub-departments
func (h *Handlers) GetMultiSub(c *gin.Context) {
	hasMultiple, subDepts, err := h.engine.MultiSub(c.Param("input"))
	if err != nil {
		h.logger.Error("Failed to check multi-sub association", "case_id", c.Param("input"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check multi-sub status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hasMultiple":    hasMultiple,
		"subDepartments": subDepts,
	})
}

// ===== SUB-DEPARTMENT ENDPOINTS =====

// CreateSubDepartment creates a sub-department under an existing department
func (h *Handlers) CreateSubDepartment(c *gin.Context) {
	var req struct {
		DepartmentID interface{} `json:"departmentId"`
		NameEn       string      `json:"subDeptNameEn"`
		NameHi       string      `json:"subDeptNameHi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	deptID, ok := coerceInt(req.DepartmentID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
		return
	}

	sd, err := h.engine.CreateSubDepartment(deptID, req.NameEn, req.NameHi)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
			return
		}
		h.logger.Error("Failed to create sub-department", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save sub-department"})
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusCreated, sd)
}

// ListSubDepartments lists sub-departments with an optional department filter
func (h *Handlers) ListSubDepartments(c *gin.Context) {
	var departmentID *int
	if dept := c.Query("departmentId"); dept != "" {
		d, err := strconv.Atoi(dept)
		if err == nil {
			departmentID = &d
		}
	}

	if departmentID != nil {
		if cached, found := h.cache.GetSubDepartments(*departmentID); found {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	subDepts, err := h.engine.ListSubDepartments(departmentID)
	if err != nil {
		h.logger.Error("Failed to list sub-departments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sub-departments"})
		return
	}

	if departmentID != nil {
		h.cache.SetSubDepartments(*departmentID, subDepts)
	}
	c.JSON(http.StatusOK, subDepts)
}

// GetSubDepartment fetches one sub-department
func (h *Handlers) GetSubDepartment(c *gin.Context) {
	sd, err := h.engine.GetSubDepartment(c.Param("id"))
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sub-department not found"})
			return
		}
		h.logger.Error("Failed to fetch sub-department", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sub-department"})
		return
	}
	c.JSON(http.StatusOK, sd)
}

// UpdateSubDepartment patches a sub-department's names
func (h *Handlers) UpdateSubDepartment(c *gin.Context) {
	var req struct {
		NameEn *string `json:"name_en"`
		NameHi *string `json:"name_hi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sd, err := h.engine.UpdateSubDepartment(c.Param("id"), req.NameEn, req.NameHi)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sub-department not found"})
			return
		}
		h.logger.Error("Failed to update sub-department", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sub-department"})
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusOK, sd)
}

// DeleteSubDepartment removes a sub-department unless cases reference it
func (h *Handlers) DeleteSubDepartment(c *gin.Context) {
	err := h.engine.DeleteSubDepartment(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, cases.ErrSubDepartmentInUse):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot delete sub-department that has associated cases",
			})
		case errors.Is(err, cases.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sub-department not found"})
		default:
			h.logger.Error("Failed to delete sub-department", "id", c.Param("id"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sub-department"})
		}
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Sub-department deleted successfully"})
}

// ===== DEPARTMENT ENDPOINTS =====

// ListDepartments returns the department register
func (h *Handlers) ListDepartments(c *gin.Context) {
	if cached, found := h.cache.GetDepartments(); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	depts, err := h.engine.ListDepartments()
	if err != nil {
		h.logger.Error("Failed to list departments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	h.cache.SetDepartments(depts)
	c.JSON(http.StatusOK, depts)
}

// GetDepartment fetches a department by integer id
func (h *Handlers) GetDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		return
	}

	dept, err := h.engine.GetDepartment(id)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		h.logger.Error("Failed to fetch department", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch department"})
		return
	}
	c.JSON(http.StatusOK, dept)
}

// CreateDepartment registers a new department
func (h *Handlers) CreateDepartment(c *gin.Context) {
	var req struct {
		ID     interface{} `json:"id"`
		NameEn string      `json:"name_en"`
		NameHi string      `json:"name_hi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, ok := coerceInt(req.ID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields", "details": []string{"id (number)"}})
		return
	}

	dept, err := h.engine.CreateDepartment(id, req.NameEn, req.NameHi)
	if err != nil {
		var verr *cases.ValidationError
		switch {
		case errors.Is(err, cases.ErrDuplicateDepartment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department with this ID already exists"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid fields", "details": verr.Details})
		default:
			h.logger.Error("Failed to create department", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		}
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusCreated, dept)
}

// ===== EMAIL REMINDER ENDPOINTS =====

// SendEmailReminder dispatches a manual reminder for a case
func (h *Handlers) SendEmailReminder(c *gin.Context) {
	var req struct {
		CaseID string `json:"caseId"`
		Email  string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reminder, err := h.engine.SendReminder(req.CaseID, req.Email)
	if err != nil {
		if errors.Is(err, cases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
			return
		}
		h.logger.Error("Failed to send email reminder", "case_id", req.CaseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email reminder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Email reminder sent successfully",
		"reminderId": reminder.ID,
		"status":     reminder.Status,
	})
}

// ListEmailReminders returns a case's reminder history
func (h *Handlers) ListEmailReminders(c *gin.Context) {
	reminders, err := h.engine.RemindersForCase(c.Param("caseId"))
	if err != nil {
		h.logger.Error("Failed to list reminders", "case_id", c.Param("caseId"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch email reminders"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// ===== STATISTICS =====

// GetStatistics returns the dashboard aggregate
func (h *Handlers) GetStatistics(c *gin.Context) {
	stats, err := h.engine.Stats()
	if err != nil {
		h.logger.Error("Failed to compute statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ===== SEED & ADMIN =====

// SeedData bootstraps the department register. Idempotent.
func (h *Handlers) SeedData(c *gin.Context) {
	if err := database.SeedDepartments(h.db); err != nil {
		h.logger.Error("Failed to seed data", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed data"})
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Seed data created successfully"})
}

// SeedAdmins bootstraps the admin accounts. Idempotent.
func (h *Handlers) SeedAdmins(c *gin.Context) {
	results, err := database.SeedAdmins(h.db, defaultAdminAccounts)
	if err != nil {
		h.logger.Error("Failed to seed admin users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed admin users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin seeding complete", "results": results})
}

// AdminLogin checks credentials. No session or token is issued.
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var admin database.Admin
	err := h.db.Where("email = ?", req.Email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.logger.Error("Admin login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "email": admin.Email})
}

// ===== TRANSACTIONAL EMAIL =====

// SendEmail sends a one-off transactional email
func (h *Handlers) SendEmail(c *gin.Context) {
	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.To == "" || req.Subject == "" || req.HTML == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: to, subject, html"})
		return
	}

	messageID, err := h.mailer.Send(req.To, req.Subject, req.HTML, "")
	if err != nil {
		h.logger.Error("Failed to send email", "recipient", req.To, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Email sent successfully",
	})
}

// coerceInt accepts a JSON number or numeric string
func coerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
