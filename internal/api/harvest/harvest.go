package harvest

import (
	"errors"
	dto "harvest_slots/internal/api/dto/harvest"
	"harvest_slots/internal/converter"
	"harvest_slots/internal/model"
	"harvest_slots/internal/service"
	"harvest_slots/pkg/req"
	"harvest_slots/pkg/resp"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type HandlerDeps struct {
	Serv service.HarvestService
}

type Handler struct {
	serv service.HarvestService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToSpinRequest(payload))
	if err != nil {
		writeServiceError(w, "spin", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.serv.Deposit(r.Context(), payload.Amount); err != nil {
		writeServiceError(w, "deposit", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CheckData(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.CheckData(r.Context())
	if err != nil {
		writeServiceError(w, "check data", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDataResponse(*data))
}

// History - ?limit= необязателен, по умолчанию 20
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = v
	}

	records, err := h.serv.History(r.Context(), limit)
	if err != nil {
		writeServiceError(w, "history", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(records))
}

func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.HouseStats()))
}

func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCatalogResponse(h.serv.Symbols()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidBet),
		errors.Is(err, model.ErrBetTooHigh),
		errors.Is(err, model.ErrInvalidMultiplier),
		errors.Is(err, model.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoUser), errors.Is(err, model.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("op", op).Error("harvest request failed")
		resp.WriteError(w, status, "internal error")
		return
	}
	resp.WriteError(w, status, err.Error())
}
