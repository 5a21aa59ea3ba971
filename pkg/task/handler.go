package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/lexload/lexload/internal/rest"
	log "github.com/sirupsen/logrus"
)

// TaskDTO is the wire shape of a task. Deadline accepts all timestamp
// formats produced by the clients (see FlexTime); status and priority are
// normalized on the way in.
type TaskDTO struct {
	Uid              string    `json:"uid,omitempty"`
	StaffId          int       `json:"staffId"`
	ClientName       string    `json:"clientName"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	ActualMinutes    int       `json:"actualMinutes"`
	Deadline         *FlexTime `json:"deadline,omitempty"`
	CreatedAt        string    `json:"createdAt,omitempty"`
	LastModified     string    `json:"lastModified,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	staffId, err := strconv.Atoi(r.URL.Query().Get("staffId"))
	if err != nil {
		writeBadRequest(w, "Invalid staffId", "staffId must be an integer")
		return
	}
	includeCompleted := r.URL.Query().Get("status") == "all"

	tasks, err := h.service.ListByStaff(r.Context(), staffId, includeCompleted)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toDTO(t))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new task")

	var dto TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "")
		return
	}

	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto TaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "")
		return
	}

	t := fromDTO(dto)
	t.Uid = mux.Vars(r)["taskUid"]
	updated, err := h.service.Update(r.Context(), t)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeBadRequest(w, "Invalid request body format", "")
		return
	}

	updated, err := h.service.SetStatus(r.Context(), mux.Vars(r)["taskUid"], StatusFromWire(request.Status))
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["taskUid"])
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(t Task) TaskDTO {
	dto := TaskDTO{
		Uid:              t.Uid,
		StaffId:          t.StaffId,
		ClientName:       t.ClientName,
		Description:      t.Description,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
		LastModified:     t.LastModified.Format(time.RFC3339),
	}
	if t.Deadline != nil {
		dto.Deadline = &FlexTime{Time: *t.Deadline}
	}
	return dto
}

func fromDTO(dto TaskDTO) Task {
	t := Task{
		Uid:              dto.Uid,
		StaffId:          dto.StaffId,
		ClientName:       dto.ClientName,
		Description:      dto.Description,
		Status:           StatusFromWire(dto.Status),
		Priority:         PriorityFromWire(dto.Priority),
		EstimatedMinutes: dto.EstimatedMinutes,
		ActualMinutes:    dto.ActualMinutes,
	}
	if dto.Deadline != nil && !dto.Deadline.IsZero() {
		deadline := dto.Deadline.Time
		t.Deadline = &deadline
	}
	return t
}

func writeBadRequest(w http.ResponseWriter, message string, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
