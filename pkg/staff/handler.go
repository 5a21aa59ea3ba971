package staff

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lexload/lexload/internal/rest"
)

type StaffDTO struct {
	Uid              string  `json:"uid"`
	Email            string  `json:"email"`
	DisplayName      string  `json:"displayName"`
	Role             string  `json:"role"`
	DailyHoursTarget float64 `json:"dailyHoursTarget"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	members, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]StaffDTO, 0, len(members))
	for _, member := range members {
		dtos = append(dtos, toDTO(member))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	member, err := h.service.GetByUid(r.Context(), mux.Vars(r)["staffUid"])
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(member)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto StaffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
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

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto StaffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	member := fromDTO(dto)
	member.Uid = mux.Vars(r)["staffUid"]
	if _, err := h.service.Update(r.Context(), member); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(member)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.Delete(r.Context(), mux.Vars(r)["staffUid"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(member Staff) StaffDTO {
	return StaffDTO{
		Uid:              member.Uid,
		Email:            member.Email,
		DisplayName:      member.DisplayName,
		Role:             member.Role,
		DailyHoursTarget: member.DailyHoursTarget,
	}
}

func fromDTO(dto StaffDTO) Staff {
	return Staff{
		Uid:              dto.Uid,
		Email:            dto.Email,
		DisplayName:      dto.DisplayName,
		Role:             dto.Role,
		DailyHoursTarget: dto.DailyHoursTarget,
	}
}
