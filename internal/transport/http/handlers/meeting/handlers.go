package meetinghandler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"paymeet/internal/domain/employee"
	"paymeet/internal/domain/meeting"
	"paymeet/internal/transport/http/api"
	"paymeet/internal/transport/http/shared"
)

const upcomingMeetingLimit = 3

type Handler struct {
	Store     *meeting.Store
	Employees *employee.Store
}

func NewHandler(store *meeting.Store, employees *employee.Store) *Handler {
	return &Handler{Store: store, Employees: employees}
}

type meetingPayload struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Location     string  `json:"location"`
	Participants []int64 `json:"participants"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/meetings", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/upcoming", h.handleUpcoming)
		r.Post("/", h.handleCreate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list meetings failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch meetings")
		return
	}
	meeting.ApplyStatus(list, time.Now())
	api.Success(w, list)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.Upcoming(r.Context(), upcomingMeetingLimit)
	if err != nil {
		log.Printf("upcoming meetings failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to fetch upcoming meetings")
		return
	}
	meeting.ApplyStatus(list, time.Now())
	api.Success(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload meetingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Required("location", payload.Location, "location is required")
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w) {
		return
	}

	participants := dedupe(payload.Participants)
	for _, employeeID := range participants {
		exists, err := h.Employees.Exists(r.Context(), employeeID)
		if err != nil {
			log.Printf("participant lookup failed: %v", err)
			api.Fail(w, http.StatusInternalServerError, "failed to create meeting")
			return
		}
		if !exists {
			api.Fail(w, http.StatusBadRequest, "participant employee does not exist")
			return
		}
	}

	created, err := h.Store.Create(r.Context(), meeting.Meeting{
		Title:        payload.Title,
		Description:  payload.Description,
		Date:         date.Format("2006-01-02"),
		Time:         meeting.FormatTimeRange(payload.StartTime, payload.EndTime),
		Location:     payload.Location,
		Participants: participants,
	})
	if err != nil {
		// participant deleted between the existence check and the insert
		if shared.PgErrorCode(err, shared.PgForeignKeyViolation) {
			api.Fail(w, http.StatusBadRequest, "participant employee does not exist")
			return
		}
		log.Printf("create meeting failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "failed to create meeting")
		return
	}
	created.Status = meeting.DeriveStatus(created.Date, time.Now())
	api.Created(w, created)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
