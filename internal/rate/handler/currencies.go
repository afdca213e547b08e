package handler

import (
	"net/http"
	"strconv"
)

type GetCurrenciesResponse struct {
	Codes []string `json:"codes" example:"USD,EUR,JPY"`
}

// GetCurrencies godoc
// @Summary List currencies
// @Description Currencies present in the live table, in table order or sorted by code
// @Tags Rates
// @Produce json
// @Param sorted query bool false "Sort by code"
// @Success 200 {object} GetCurrenciesResponse
// @Router /rates/currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	sorted, _ := strconv.ParseBool(r.URL.Query().Get("sorted"))

	symbols := h.service.Currencies(sorted)
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.String())
	}
	writeJSON(w, http.StatusOK, GetCurrenciesResponse{Codes: codes})
}
