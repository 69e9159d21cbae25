package employeehandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paymeet/internal/domain/employee"
	"paymeet/internal/transport/http/api"
	"paymeet/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
		r.Post("/", h.handleCreate)
		r.Patch("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list employees failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch employees")
		return
	}
	api.Success(w, list)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("employee stats failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch employee statistics")
		return
	}
	api.Success(w, employee.CountByStatus(list))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Status == "" {
		payload.Status = employee.StatusActive
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("employeeId", payload.EmployeeNumber, "employee ID is required")
	v.Enum("status", payload.Status, employee.Statuses, "must be one of active, on-leave, inactive")
	if v.Reject(w) {
		return
	}

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		if shared.PgErrorCode(err, shared.PgUniqueViolation) {
			api.Fail(w, http.StatusConflict, "employee with that email or employee ID already exists")
			return
		}
		log.Printf("create employee failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to create employee")
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var patch employee.Patch
	if err := decoder.Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	existing, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		log.Printf("get employee failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	patch.Apply(&existing)

	v := shared.NewValidator()
	v.Required("firstName", existing.FirstName, "first name is required")
	v.Required("lastName", existing.LastName, "last name is required")
	v.Required("email", existing.Email, "email is required")
	v.Required("employeeId", existing.EmployeeNumber, "employee ID is required")
	v.Enum("status", existing.Status, employee.Statuses, "must be one of active, on-leave, inactive")
	if v.Reject(w) {
		return
	}

	updated, err := h.Store.Update(r.Context(), existing)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		if shared.PgErrorCode(err, shared.PgUniqueViolation) {
			api.Fail(w, http.StatusConflict, "employee with that email or employee ID already exists")
			return
		}
		log.Printf("update employee failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to update employee")
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(w, r)
	if !ok {
		return
	}

	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		log.Printf("delete employee failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}
	api.Success(w, map[string]string{"message": "employee deleted successfully"})
}

// A non-numeric id can never match a row, so it reports the same 404 as a
// missing one.
func parseEmployeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusNotFound, "employee not found")
		return 0, false
	}
	return id, true
}
