package workhours

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lexload/lexload/internal/rest"
	log "github.com/sirupsen/logrus"
)

type HolidayDTO struct {
	Uid  string `json:"uid"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type Handler struct {
	repo       HolidayRepo
	calculator *CalculatorImpl
}

func NewHandler(repo HolidayRepo, calculator *CalculatorImpl) *Handler {
	return &Handler{repo, calculator}
}

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid from date", "from must be in YYYY-MM-DD format")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid to date", "to must be in YYYY-MM-DD format")
		return
	}

	holidays, err := h.repo.ListBetween(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, holiday := range holidays {
		dtos = append(dtos, toHolidayDTO(holiday))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body format", "")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dto.Date, time.Local)
	if err != nil {
		writeBadRequest(w, "Invalid date format", "date must be in YYYY-MM-DD format")
		return
	}

	holiday := Holiday{
		Uid:  uuid.NewString(),
		Date: date,
		Name: dto.Name,
	}
	stored, err := h.repo.Store(r.Context(), holiday)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.calculator.Invalidate()
	log.Debugf("Stored holiday %s (%s)", stored.Name, dto.Date)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toHolidayDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["holidayUid"]
	deleted, err := h.repo.Delete(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.calculator.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func toHolidayDTO(holiday Holiday) HolidayDTO {
	return HolidayDTO{
		Uid:  holiday.Uid,
		Date: holiday.Date.Format("2006-01-02"),
		Name: holiday.Name,
	}
}

func writeBadRequest(w http.ResponseWriter, message string, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
