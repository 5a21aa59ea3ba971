package timesheet

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/lexload/lexload/internal/rest"
)

type EntryDTO struct {
	Id      int    `json:"id,omitempty"`
	StaffId int    `json:"staffId"`
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
	Notes   string `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	staffId, err := strconv.Atoi(r.URL.Query().Get("staffId"))
	if err != nil {
		writeBadRequest(w, "Invalid staffId", "staffId must be an integer")
		return
	}
	from, err := time.ParseInLocation(DateKey, r.URL.Query().Get("from"), time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid from date", "from must be in YYYY-MM-DD format")
		return
	}
	to, err := time.ParseInLocation(DateKey, r.URL.Query().Get("to"), time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid to date", "to must be in YYYY-MM-DD format")
		return
	}

	entries, err := h.service.ListByStaff(r.Context(), staffId, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toDTO(entry))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) LogTime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "")
		return
	}
	date, err := time.ParseInLocation(DateKey, dto.Date, time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}

	entry := Entry{
		StaffId: dto.StaffId,
		Date:    date,
		Minutes: dto.Minutes,
		Notes:   dto.Notes,
	}
	stored, err := h.service.LogTime(r.Context(), entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["entryId"])
	if err != nil {
		writeBadRequest(w, "Invalid entry id", "entry id must be an integer")
		return
	}
	staffId, err := strconv.Atoi(r.URL.Query().Get("staffId"))
	if err != nil {
		writeBadRequest(w, "Invalid staffId", "staffId must be an integer")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id, staffId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(entry Entry) EntryDTO {
	return EntryDTO{
		Id:      entry.Id,
		StaffId: entry.StaffId,
		Date:    entry.Date.Format(DateKey),
		Minutes: entry.Minutes,
		Notes:   entry.Notes,
	}
}

func writeBadRequest(w http.ResponseWriter, message string, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
