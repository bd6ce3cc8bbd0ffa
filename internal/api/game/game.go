package game

import (
	"errors"
	"log"
	"net/http"

	dto "slots_backend/internal/api/dto/game"
	"slots_backend/internal/converter"
	"slots_backend/internal/model"
	"slots_backend/internal/service"
	"slots_backend/pkg/req"
	"slots_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Start - получить или создать игровую сессию
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.serv.Start(r.Context(), payload.UserID, payload.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStartResponse(*result))
}

// Roll - один бросок по активной сессии
func (h *Handler) Roll(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.RollRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request")
		return
	}

	if payload.SessionID == "" {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	result, err := h.serv.Roll(r.Context(), payload.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRollResponse(*result))
}

// Cashout - вывод кредитов сессии на баланс владельца
func (h *Handler) Cashout(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CashoutRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request")
		return
	}

	if payload.SessionID == "" {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	result, err := h.serv.Cashout(r.Context(), payload.SessionID, payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCashoutResponse(*result))
}

// Profile - профиль пользователя с активной сессией
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ProfileRequest](r.Body)
	if err != nil {
		resp.WriteErrorResponse(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.serv.Profile(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProfileResponse(*result))
}

// writeServiceError - мапит ошибки движка на HTTP статусы.
// Бизнес-ошибки уходят клиенту со своим текстом и в лог не попадают,
// все остальное считается сбоем хранилища
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrUserNotFound):
		resp.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInsufficientCredits):
		resp.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrGuestCashout),
		errors.Is(err, model.ErrOwnerMismatch),
		errors.Is(err, model.ErrInsufficientRolls):
		resp.WriteErrorResponse(w, http.StatusForbidden, err.Error())
	default:
		log.Println("game handler error:", err)
		resp.WriteErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
