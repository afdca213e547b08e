package handler

import (
	"net/http"
	"strings"

	"fxconv/internal/domain"
	"fxconv/internal/rate"
)

type GetRatesResponse struct {
	Base  string     `json:"base" example:"EUR"`
	AsOf  string     `json:"as_of" example:"2024-01-15"`
	Rates []rate.Row `json:"rates"`
}

// GetRates godoc
// @Summary List rates
// @Description Rates of all known currencies against the current base, or of the requested symbols in request order
// @Tags Rates
// @Produce json
// @Param symbols query string false "Comma separated currency codes" example(USD,GBP)
// @Success 200 {object} GetRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	var symbols []domain.Symbol
	if raw := strings.TrimSpace(r.URL.Query().Get("symbols")); raw != "" {
		parts := strings.Split(raw, ",")
		symbols = make([]domain.Symbol, 0, len(parts))
		for _, part := range parts {
			sym, err := h.parseSymbol("symbols", part)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			symbols = append(symbols, sym)
		}
	}

	rows, st, err := h.service.RatesWithStatus(symbols)
	if err != nil {
		writeQueryError(w, "GetRates", err)
		return
	}

	writeJSON(w, http.StatusOK, GetRatesResponse{
		Base:  st.Base.String(),
		AsOf:  st.AsOf.Format("2006-01-02"),
		Rates: rows,
	})
}
