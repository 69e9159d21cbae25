package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// Fail writes the flat {"message": ...} error body every endpoint uses.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Message: message})
}
