package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"paymeet/internal/domain/employee"
	"paymeet/internal/domain/payroll"
	"paymeet/internal/transport/http/api"
	"paymeet/internal/transport/http/shared"
)

const recentPayslipLimit = 5

type Handler struct {
	Store     *payroll.Store
	Employees *employee.Store
}

func NewHandler(store *payroll.Store, employees *employee.Store) *Handler {
	return &Handler{Store: store, Employees: employees}
}

// Money fields are pointers so an omitted or null input defaults to zero.
// Caller-supplied grossPay/totalDeductions/netPay are ignored; totals are
// always recomputed here.
type payslipPayload struct {
	EmployeeID      int64            `json:"employeeId"`
	PayPeriodStart  string           `json:"payPeriodStart"`
	PayPeriodEnd    string           `json:"payPeriodEnd"`
	IssueDate       string           `json:"issueDate"`
	BasicSalary     *decimal.Decimal `json:"basicSalary"`
	Overtime        *decimal.Decimal `json:"overtime"`
	Bonus           *decimal.Decimal `json:"bonus"`
	Tax             *decimal.Decimal `json:"tax"`
	HealthInsurance *decimal.Decimal `json:"healthInsurance"`
	Retirement      *decimal.Decimal `json:"retirement"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/recent", h.handleRecent)
		r.Post("/", h.handleCreate)
		r.Get("/{payslipID}/download", h.handleDownload)
	})
	r.Get("/payroll/stats", h.handleStats)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list payslips failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch payslips")
		return
	}
	api.Success(w, list)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.Recent(r.Context(), recentPayslipLimit)
	if err != nil {
		log.Printf("recent payslips failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch recent payslips")
		return
	}
	api.Success(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload payslipPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	v := shared.NewValidator()
	if payload.EmployeeID <= 0 {
		v.Add("employeeId", "must reference an employee")
	}
	start, startOK := v.Date("payPeriodStart", payload.PayPeriodStart)
	end, endOK := v.Date("payPeriodEnd", payload.PayPeriodEnd)
	issue, _ := v.Date("issueDate", payload.IssueDate)
	if startOK && endOK {
		v.DateOrder("payPeriodStart", start, "payPeriodEnd", end)
	}
	inputs := payroll.Inputs{
		BasicSalary:     orZero(payload.BasicSalary),
		Overtime:        orZero(payload.Overtime),
		Bonus:           orZero(payload.Bonus),
		Tax:             orZero(payload.Tax),
		HealthInsurance: orZero(payload.HealthInsurance),
		Retirement:      orZero(payload.Retirement),
	}
	if inputs.BasicSalary.IsNegative() || inputs.Overtime.IsNegative() || inputs.Bonus.IsNegative() ||
		inputs.Tax.IsNegative() || inputs.HealthInsurance.IsNegative() || inputs.Retirement.IsNegative() {
		v.Add("amounts", "monetary inputs must not be negative")
	}
	if v.Reject(w) {
		return
	}

	exists, err := h.Employees.Exists(r.Context(), payload.EmployeeID)
	if err != nil {
		log.Printf("employee lookup failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to create payslip")
		return
	}
	if !exists {
		api.Fail(w, http.StatusBadRequest, "referenced employee does not exist")
		return
	}

	totals := payroll.ComputeTotals(inputs)
	created, err := h.Store.Create(r.Context(), payroll.Payslip{
		EmployeeID:      payload.EmployeeID,
		PayPeriodStart:  start.Format("2006-01-02"),
		PayPeriodEnd:    end.Format("2006-01-02"),
		IssueDate:       issue.Format("2006-01-02"),
		BasicSalary:     payroll.MoneyFrom(inputs.BasicSalary),
		Overtime:        payroll.MoneyFrom(inputs.Overtime),
		Bonus:           payroll.MoneyFrom(inputs.Bonus),
		Tax:             payroll.MoneyFrom(inputs.Tax),
		HealthInsurance: payroll.MoneyFrom(inputs.HealthInsurance),
		Retirement:      payroll.MoneyFrom(inputs.Retirement),
		GrossPay:        payroll.MoneyFrom(totals.GrossPay),
		TotalDeductions: payroll.MoneyFrom(totals.TotalDeductions),
		NetPay:          payroll.MoneyFrom(totals.NetPay),
	})
	if err != nil {
		if shared.PgErrorCode(err, shared.PgForeignKeyViolation) {
			api.Fail(w, http.StatusBadRequest, "referenced employee does not exist")
			return
		}
		log.Printf("create payslip failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to create payslip")
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "payslipID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusNotFound, "payslip not found")
		return
	}

	slip, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, payroll.ErrPayslipNotFound) {
		api.Fail(w, http.StatusNotFound, "payslip not found")
		return
	}
	if err != nil {
		log.Printf("get payslip failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch payslip")
		return
	}

	emp, err := h.Employees.Get(r.Context(), slip.EmployeeID)
	if err != nil {
		log.Printf("payslip employee lookup failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to render payslip")
		return
	}

	doc, err := payroll.RenderPayslipPDF(slip, emp)
	if err != nil {
		log.Printf("render payslip pdf failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to render payslip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%d.pdf", slip.ID))
	_, _ = w.Write(doc)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	stats, err := h.Store.StatsByMonth(r.Context(), month)
	if errors.Is(err, payroll.ErrStatsNotFound) {
		api.Fail(w, http.StatusNotFound, "payroll stats not found")
		return
	}
	if err != nil {
		log.Printf("payroll stats failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch payroll statistics")
		return
	}
	api.Success(w, stats)
}

func orZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
