package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cache"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/cases"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/config"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/mailer"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log, err := logger.NewLogger("error", "json")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	cfg := &config.Config{
		Port:               "5000",
		ReminderWindowDays: 7,
		// No SMTP credentials; every send fails and is recorded as such
	}

	mail := mailer.New(cfg, log)
	notifier := mailer.NewNotifier(mail, log, true)
	engine := cases.NewEngine(db, log, notifier, cfg.ReminderWindowDays, cfg.GuardPluralRefs)
	lookupCache := cache.New(time.Minute)

	router := gin.New()
	SetupRoutes(router, db, engine, lookupCache, mail, log, cfg)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Backend is running" {
		t.Errorf("message = %v", body["message"])
	}
	if body["mailConfigured"] != false {
		t.Errorf("mailConfigured = %v, want false without SMTP credentials", body["mailConfigured"])
	}
	if _, ok := body["cache"].(map[string]interface{}); !ok {
		t.Errorf("cache stats missing from health payload: %s", w.Body.String())
	}
}

func TestCacheStats(t *testing.T) {
	router := newTestRouter(t)

	// First read misses, second is served from the cache
	for i := 0; i < 2; i++ {
		if w := doRequest(t, router, http.MethodGet, "/departments", nil); w.Code != http.StatusOK {
			t.Fatalf("list departments %d: status = %d", i, w.Code)
		}
	}

	w := doRequest(t, router, http.MethodGet, "/cache/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stats := decodeBody(t, w)
	if hits, _ := stats["hits"].(float64); hits < 1 {
		t.Errorf("hits = %v, want at least 1", stats["hits"])
	}
	if misses, _ := stats["misses"].(float64); misses < 1 {
		t.Errorf("misses = %v, want at least 1", stats["misses"])
	}
}

func TestCaseLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Register a department
	w := doRequest(t, router, http.MethodPost, "/departments", gin.H{
		"id":      1,
		"name_en": "Administration",
		"name_hi": "प्रशासन",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create department: status = %d, body %s", w.Code, w.Body.String())
	}

	// Add a sub-department under it
	w = doRequest(t, router, http.MethodPost, "/sub-departments", gin.H{
		"departmentId":  1,
		"subDeptNameEn": "Chief Development Officer",
		"subDeptNameHi": "मुख्य विकास अधिकारी",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create sub-department: status = %d, body %s", w.Code, w.Body.String())
	}
	subDeptID, _ := decodeBody(t, w)["id"].(string)
	if subDeptID == "" {
		t.Fatal("sub-department id missing from response")
	}

	// File a case against that sub-department
	w = doRequest(t, router, http.MethodPost, "/cases", gin.H{
		"petitionerName": "Ram Prasad",
		"respondentName": "State of UP",
		"filingDate":     "2024-01-15",
		"department":     1,
		"subDepartments": []string{subDeptID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create case: status = %d, body %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["status"] != "Pending" {
		t.Errorf("new case status = %v, want Pending", created["status"])
	}
	caseID, _ := created["id"].(string)
	if caseID == "" {
		t.Fatal("case id missing from response")
	}

	// A single sub-department does not register a multi association
	w = doRequest(t, router, http.MethodGet, "/cases/"+caseID+"/multi-sub", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("multi-sub: status = %d", w.Code)
	}
	if decodeBody(t, w)["hasMultiple"] != false {
		t.Error("single sub-department case should not report hasMultiple")
	}

	// The referenced sub-department cannot be deleted
	w = doRequest(t, router, http.MethodDelete, "/sub-departments/"+subDeptID, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("delete referenced sub-department: status = %d, want 400", w.Code)
	}

	// Resolve the case
	w = doRequest(t, router, http.MethodPut, "/cases/"+caseID, gin.H{"status": "Resolved"})
	if w.Code != http.StatusOK {
		t.Fatalf("update case: status = %d, body %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["status"] != "Resolved" {
		t.Error("case should be Resolved after the patch")
	}

	// Delete and verify it is gone
	w = doRequest(t, router, http.MethodDelete, "/cases/"+caseID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete case: status = %d", w.Code)
	}
	w = doRequest(t, router, http.MethodGet, "/cases/"+caseID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("fetch deleted case: status = %d, want 404", w.Code)
	}
	if decodeBody(t, w)["message"] != "Case not found" {
		t.Errorf("not-found body = %s", w.Body.String())
	}

	// The sub-department frees up once the case is gone
	w = doRequest(t, router, http.MethodDelete, "/sub-departments/"+subDeptID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete freed sub-department: status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateCaseValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
		"respondentName": "State of UP",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Missing or invalid fields" {
		t.Errorf("error = %v", body["error"])
	}
	details, _ := body["details"].([]interface{})
	if len(details) == 0 {
		t.Error("details should name the missing fields")
	}
}

func TestCreateCaseLegacyFieldNames(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
		"petitionername": "Ram Prasad",
		"respondentname": "State of UP",
		"filingDate":     "2024-01-15",
		"department":     "3",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["petitionerName"] != "Ram Prasad" {
		t.Errorf("petitionerName = %v", body["petitionerName"])
	}
	if body["department"] != float64(3) {
		t.Errorf("department = %v, want 3", body["department"])
	}
}

func TestGetCaseByCaseNumber(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
		"caseNumber":     "CN-2024-0042",
		"petitionerName": "Ram Prasad",
		"respondentName": "State of UP",
		"filingDate":     "2024-01-15",
		"department":     1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/cases/CN-2024-0042", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lookup by case number: status = %d", w.Code)
	}
	if decodeBody(t, w)["caseNumber"] != "CN-2024-0042" {
		t.Errorf("wrong case resolved: %s", w.Body.String())
	}
}

func TestListCasesPagination(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
			"petitionerName": "Ram Prasad",
			"respondentName": "State of UP",
			"filingDate":     "2024-01-15",
			"department":     1,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create case %d: status = %d", i, w.Code)
		}
	}

	// Unpaged: pagination is null
	w := doRequest(t, router, http.MethodGet, "/cases", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["pagination"] != nil {
		t.Errorf("unpaged pagination = %v, want null", body["pagination"])
	}
	if items, _ := body["cases"].([]interface{}); len(items) != 3 {
		t.Errorf("cases = %d, want 3", len(items))
	}

	// Paged: metadata present
	w = doRequest(t, router, http.MethodGet, "/cases?page=1&limit=2", nil)
	body = decodeBody(t, w)
	pagination, _ := body["pagination"].(map[string]interface{})
	if pagination == nil {
		t.Fatal("pagination metadata missing")
	}
	if pagination["total"] != float64(3) || pagination["pages"] != float64(2) {
		t.Errorf("pagination = %v", pagination)
	}
	if items, _ := body["cases"].([]interface{}); len(items) != 2 {
		t.Errorf("page 1 with limit 2 should hold 2 cases, got %d", len(items))
	}
}

func TestDuplicateDepartment(t *testing.T) {
	router := newTestRouter(t)

	payload := gin.H{"id": 1, "name_en": "Administration", "name_hi": "प्रशासन"}
	if w := doRequest(t, router, http.MethodPost, "/departments", payload); w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", w.Code)
	}
	w := doRequest(t, router, http.MethodPost, "/departments", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status = %d, want 400", w.Code)
	}
}

func TestSubDepartmentRequiresDepartment(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/sub-departments", gin.H{
		"departmentId":  99,
		"subDeptNameEn": "Officer",
		"subDeptNameHi": "अधिकारी",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSeedDataPopulatesDepartments(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/seed-data", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed: status = %d, body %s", w.Code, w.Body.String())
	}

	// Idempotent
	if w := doRequest(t, router, http.MethodPost, "/seed-data", nil); w.Code != http.StatusOK {
		t.Fatalf("second seed: status = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/departments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list departments: status = %d", w.Code)
	}
	var depts []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &depts); err != nil {
		t.Fatalf("failed to decode departments: %v", err)
	}
	if len(depts) == 0 {
		t.Fatal("seeded register should not be empty")
	}
}

func TestAdminSeedAndLogin(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/admin/seed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed admins: status = %d, body %s", w.Code, w.Body.String())
	}

	// Correct credentials
	w = doRequest(t, router, http.MethodPost, "/admin/login", gin.H{
		"email":    "admincourt@gmail.com",
		"password": "Admin@123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["email"] != "admincourt@gmail.com" {
		t.Errorf("login response = %s", w.Body.String())
	}

	// Wrong password
	w = doRequest(t, router, http.MethodPost, "/admin/login", gin.H{
		"email":    "admincourt@gmail.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status = %d, want 401", w.Code)
	}

	// Unknown account
	w = doRequest(t, router, http.MethodPost, "/admin/login", gin.H{
		"email":    "nobody@example.in",
		"password": "Admin@123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown account: status = %d, want 401", w.Code)
	}
}

func TestSendEmailValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/send-email", gin.H{
		"to": "officer@example.in",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// The legacy path behaves the same
	w = doRequest(t, router, http.MethodPost, "/api/send-email", gin.H{
		"subject": "Hearing notice",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("legacy path: status = %d, want 400", w.Code)
	}
}

func TestEmailReminderWithoutTransport(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
		"petitionerName": "Ram Prasad",
		"respondentName": "State of UP",
		"filingDate":     "2024-01-15",
		"department":     1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create case: status = %d", w.Code)
	}
	caseID, _ := decodeBody(t, w)["id"].(string)

	// Without SMTP credentials the attempt is recorded as failed, not
	// surfaced as a server error
	w = doRequest(t, router, http.MethodPost, "/email-reminders", gin.H{
		"caseId": caseID,
		"email":  "officer@example.in",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("reminder: status = %d, body %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["status"] != "failed" {
		t.Errorf("reminder status = %s", w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/email-reminders/case/"+caseID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reminders: status = %d", w.Code)
	}
	var reminders []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Errorf("expected 1 reminder record, got %d", len(reminders))
	}
}

func TestReminderForMissingCase(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/email-reminders", gin.H{
		"caseId": "507f1f77bcf86cd799439011",
		"email":  "officer@example.in",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost, "/cases", gin.H{
			"petitionerName": "Ram Prasad",
			"respondentName": "State of UP",
			"filingDate":     "2024-01-15",
			"department":     1,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create case %d: status = %d", i, w.Code)
		}
	}

	w := doRequest(t, router, http.MethodGet, "/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["totalCases"] != float64(2) {
		t.Errorf("totalCases = %v, want 2", body["totalCases"])
	}
	if body["pendingCases"] != float64(2) {
		t.Errorf("pendingCases = %v, want 2", body["pendingCases"])
	}
	if _, ok := body["casesByDepartment"]; !ok {
		t.Error("casesByDepartment missing")
	}
}
