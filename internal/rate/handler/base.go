package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type SetBaseRequest struct {
	Base string `json:"base" example:"USD"`
}

// GetBase godoc
// @Summary Table status
// @Description Current base currency, as-of date and source of the live table
// @Tags Rates
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /rates/base [get]
func (h *Handler) GetBase(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(h.service.Status()))
}

// SetBase godoc
// @Summary Change base currency
// @Description Rebases the live table on the given currency
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body SetBaseRequest true "New base currency"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates/base [put]
func (h *Handler) SetBase(w http.ResponseWriter, r *http.Request) {
	var req SetBaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return
	}
	base, err := h.parseSymbol("base", req.Base)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.service.SetBase(base); err != nil {
		writeQueryError(w, "SetBase", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusResponse(h.service.Status()))
}
