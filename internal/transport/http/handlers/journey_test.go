package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"paymeet/internal/app/server"
	"paymeet/internal/platform/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:       dbURL,
		Environment:       "test",
		JWTSecret:         "test-secret",
		AuthEnabled:       false,
		UploadDir:         t.TempDir(),
		MaxUploadBytes:    5 * 1024 * 1024,
		MaxBodyBytes:      1048576,
		RunMigrations:     true,
		RunSeed:           true,
		MigrationsDir:     "../../../../migrations",
		SeedAdminUsername: "admin",
		SeedAdminPassword: "ChangeMe123!",
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, rawURL string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func TestEmployeeJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	resp, body := doJSON(t, client, http.MethodGet, ts.URL+"/api/employees", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list employees: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var employees []map[string]any
	if err := json.Unmarshal(body, &employees); err != nil {
		t.Fatalf("decode employees: %v", err)
	}

	resp, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/employees/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("employee stats: expected 200, got %d", resp.StatusCode)
	}
	var stats struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		OnLeave  int `json:"onLeave"`
		Inactive int `json:"inactive"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != len(employees) {
		t.Fatalf("stats total %d != list length %d", stats.Total, len(employees))
	}
	if stats.Active+stats.OnLeave+stats.Inactive != stats.Total {
		t.Fatalf("stats do not sum to total: %+v", stats)
	}

	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("journey-%d@example.com", suffix)
	create := map[string]any{
		"firstName":  "Test",
		"lastName":   "Person",
		"email":      email,
		"phone":      "555-000-0000",
		"department": "QA",
		"position":   "Tester",
		"employeeId": fmt.Sprintf("T%d", suffix),
	}

	resp, body = doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", create)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode created employee: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected positive id, got %d", created.ID)
	}
	if created.Status != "active" {
		t.Fatalf("expected default status active, got %q", created.Status)
	}

	// duplicate email must be refused
	create["employeeId"] = fmt.Sprintf("T%d-b", suffix)
	resp, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", create)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", resp.StatusCode)
	}

	// id must be stable across reads
	resp, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/employees", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-list employees: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), fmt.Sprintf(`"id":%d`, created.ID)) {
		t.Fatalf("created employee %d missing from list", created.ID)
	}

	resp, body = doJSON(t, client, http.MethodPatch, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), map[string]any{"status": "on-leave"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch employee: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var patched struct {
		Status string `json:"status"`
		Email  string `json:"email"`
	}
	if err := json.Unmarshal(body, &patched); err != nil {
		t.Fatalf("decode patched employee: %v", err)
	}
	if patched.Status != "on-leave" {
		t.Fatalf("expected on-leave, got %q", patched.Status)
	}
	if patched.Email != email {
		t.Fatalf("patch must not touch email, got %q", patched.Email)
	}

	resp, _ = doJSON(t, client, http.MethodPatch, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), map[string]any{"salary": 100})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown patch key: expected 400, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, client, http.MethodPatch, ts.URL+"/api/employees/99999999", map[string]any{"status": "active"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("patch missing employee: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete employee: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/employees/%d", ts.URL, created.ID), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete again: expected 404, got %d", resp.StatusCode)
	}
}

func TestPayslipJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	suffix := time.Now().UnixNano()
	resp, body := doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", map[string]any{
		"firstName":  "Pay",
		"lastName":   "Slip",
		"email":      fmt.Sprintf("payslip-%d@example.com", suffix),
		"employeeId": fmt.Sprintf("P%d", suffix),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var emp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &emp); err != nil {
		t.Fatalf("decode employee: %v", err)
	}

	// caller-supplied totals must be ignored and recomputed
	resp, body = doJSON(t, client, http.MethodPost, ts.URL+"/api/payslips", map[string]any{
		"employeeId":      emp.ID,
		"payPeriodStart":  "2024-01-01",
		"payPeriodEnd":    "2024-01-31",
		"issueDate":       "2024-02-05",
		"basicSalary":     4500,
		"overtime":        150,
		"bonus":           200,
		"tax":             750,
		"healthInsurance": 150,
		"retirement":      250,
		"grossPay":        999999,
		"netPay":          1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create payslip: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var slip struct {
		ID              int64  `json:"id"`
		GrossPay        string `json:"grossPay"`
		TotalDeductions string `json:"totalDeductions"`
		NetPay          string `json:"netPay"`
	}
	if err := json.Unmarshal(body, &slip); err != nil {
		t.Fatalf("decode payslip: %v", err)
	}
	if slip.GrossPay != "4850.00" {
		t.Fatalf("expected gross 4850.00, got %q", slip.GrossPay)
	}
	if slip.TotalDeductions != "1150.00" {
		t.Fatalf("expected deductions 1150.00, got %q", slip.TotalDeductions)
	}
	if slip.NetPay != "3700.00" {
		t.Fatalf("expected net 3700.00, got %q", slip.NetPay)
	}

	resp, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/payslips", map[string]any{
		"employeeId":     99999999,
		"payPeriodStart": "2024-01-01",
		"payPeriodEnd":   "2024-01-31",
		"issueDate":      "2024-02-05",
		"basicSalary":    1000,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("payslip for missing employee: expected 400, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/payslips/recent", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recent payslips: expected 200, got %d", resp.StatusCode)
	}
	var recent []struct {
		IssueDate string `json:"issueDate"`
	}
	if err := json.Unmarshal(body, &recent); err != nil {
		t.Fatalf("decode recent: %v", err)
	}
	if len(recent) > 5 {
		t.Fatalf("recent must be capped at 5, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].IssueDate > recent[i-1].IssueDate {
			t.Fatalf("recent not sorted newest first: %v", recent)
		}
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/payslips/%d/download", ts.URL, slip.ID), nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	downloadResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("download payslip: %v", err)
	}
	defer downloadResp.Body.Close()
	if downloadResp.StatusCode != http.StatusOK {
		t.Fatalf("download payslip: expected 200, got %d", downloadResp.StatusCode)
	}
	if ct := downloadResp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	doc, err := io.ReadAll(downloadResp.Body)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatal("expected PDF document")
	}

	resp, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/payslips/99999999/download", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("download missing payslip: expected 404, got %d", resp.StatusCode)
	}
}

func TestPayrollStats(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	resp, body := doJSON(t, client, http.MethodGet, ts.URL+"/api/payroll/stats?month="+url.QueryEscape("April 2023"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payroll stats: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var stats struct {
		Month       string `json:"month"`
		TotalSalary string `json:"totalSalary"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Month != "April 2023" {
		t.Fatalf("expected April 2023, got %q", stats.Month)
	}
	if stats.TotalSalary != "128450.00" {
		t.Fatalf("expected total salary 128450.00, got %q", stats.TotalSalary)
	}

	resp, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/payroll/stats?month=Never+2099", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing month: expected 404, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, client, http.MethodGet, ts.URL+"/api/payroll/stats", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("default month: expected 200, got %d", resp.StatusCode)
	}
}

func TestMeetingJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	resp, body := doJSON(t, client, http.MethodGet, ts.URL+"/api/employees", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list employees: expected 200, got %d", resp.StatusCode)
	}
	var employees []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &employees); err != nil {
		t.Fatalf("decode employees: %v", err)
	}
	if len(employees) == 0 {
		t.Fatal("expected seeded employees")
	}

	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp, body = doJSON(t, client, http.MethodPost, ts.URL+"/api/meetings", map[string]any{
		"title":        "Planning",
		"description":  "Sprint planning",
		"date":         future,
		"startTime":    "10:30",
		"endTime":      "11:30",
		"location":     "Conference Room A",
		"participants": []int64{employees[0].ID},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create meeting: expected 201, got %d: %s", resp.StatusCode, body)
	}
	var created struct {
		Time   string `json:"time"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode meeting: %v", err)
	}
	if created.Time != "10:30 - 11:30" {
		t.Fatalf("expected combined time range, got %q", created.Time)
	}
	if created.Status != "upcoming" {
		t.Fatalf("expected upcoming status, got %q", created.Status)
	}

	resp, body = doJSON(t, client, http.MethodPost, ts.URL+"/api/meetings", map[string]any{
		"title":    "No Times",
		"date":     future,
		"location": "Room B",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create meeting without times: expected 201, got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode meeting: %v", err)
	}
	if created.Time != "00:00 - 00:00" {
		t.Fatalf("expected zero time range, got %q", created.Time)
	}

	resp, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/meetings", map[string]any{
		"title":        "Ghost",
		"date":         future,
		"location":     "Room C",
		"participants": []int64{99999999},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown participant: expected 400, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/meetings/upcoming", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upcoming meetings: expected 200, got %d", resp.StatusCode)
	}
	var upcoming []struct {
		Date   string `json:"date"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &upcoming); err != nil {
		t.Fatalf("decode upcoming: %v", err)
	}
	if len(upcoming) > 3 {
		t.Fatalf("upcoming must be capped at 3, got %d", len(upcoming))
	}
	today := time.Now().Format("2006-01-02")
	for i, m := range upcoming {
		if m.Date < today {
			t.Fatalf("upcoming meeting %d dated in the past: %s", i, m.Date)
		}
		if m.Status == "past" {
			t.Fatalf("upcoming meeting %d has past status", i)
		}
		if i > 0 && upcoming[i-1].Date > m.Date {
			t.Fatalf("upcoming not sorted ascending: %v", upcoming)
		}
	}
}

func TestProfileJourney(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	resp, body := doJSON(t, client, http.MethodGet, ts.URL+"/api/profile", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile: expected 200, got %d", resp.StatusCode)
	}
	var prof struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(body, &prof); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if prof.Email == "" {
		t.Fatal("expected seeded profile email")
	}

	resp, body = doJSON(t, client, http.MethodPatch, ts.URL+"/api/profile", map[string]any{"city": "Boston"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch profile: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var patched struct {
		City      string `json:"city"`
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(body, &patched); err != nil {
		t.Fatalf("decode patched profile: %v", err)
	}
	if patched.City != "Boston" {
		t.Fatalf("expected city Boston, got %q", patched.City)
	}
	if patched.FirstName != prof.FirstName || patched.Email != prof.Email {
		t.Fatal("patch must not touch unrelated fields")
	}

	resp, _ = doJSON(t, client, http.MethodPatch, ts.URL+"/api/profile", map[string]any{"photoUrl": "/uploads/hack.png"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("photoUrl through patch: expected 400, got %d", resp.StatusCode)
	}

	// a photo bigger than the JSON body cap but under the upload cap must pass
	large := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 2*1024*1024)...)
	uploadPhoto(t, client, ts.URL, prof.ID, "big.png", large, http.StatusOK)

	pngBytes := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	photoURL := uploadPhoto(t, client, ts.URL, prof.ID, "avatar.png", pngBytes, http.StatusOK)
	if !strings.HasPrefix(photoURL, "/uploads/") {
		t.Fatalf("unexpected photo url %q", photoURL)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+photoURL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	fileResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("fetch upload: %v", err)
	}
	defer fileResp.Body.Close()
	if fileResp.StatusCode != http.StatusOK {
		t.Fatalf("fetch upload: expected 200, got %d", fileResp.StatusCode)
	}
	if ct := fileResp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}

	// rejected uploads must not corrupt the profile row
	uploadPhoto(t, client, ts.URL, prof.ID, "notes.txt", []byte("hello"), http.StatusBadRequest)
	uploadPhoto(t, client, ts.URL, prof.ID, "empty.png", nil, http.StatusBadRequest)

	resp, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/profile", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-get profile: expected 200, got %d", resp.StatusCode)
	}
	var after struct {
		FirstName string `json:"firstName"`
		PhotoURL  string `json:"photoUrl"`
	}
	if err := json.Unmarshal(body, &after); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if after.FirstName != prof.FirstName {
		t.Fatal("failed upload nulled out profile fields")
	}
	if after.PhotoURL != photoURL {
		t.Fatalf("expected photo url %q, got %q", photoURL, after.PhotoURL)
	}
}

func uploadPhoto(t *testing.T, client *http.Client, baseURL string, profileID int64, filename string, content []byte, wantStatus int) string {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/profile/%d/photo", baseURL, profileID), &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("upload %s: expected %d, got %d: %s", filename, wantStatus, resp.StatusCode, body)
	}

	var result struct {
		PhotoURL string `json:"photoUrl"`
	}
	_ = json.Unmarshal(body, &result)
	return result.PhotoURL
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	resp, body := doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/login", map[string]string{
		"username": "admin",
		"password": "ChangeMe123!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	resp, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", resp.StatusCode)
	}
}
