package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CrossRateResponse struct {
	From string          `json:"from" example:"GBP"`
	To   string          `json:"to" example:"USD"`
	Rate decimal.Decimal `json:"rate" swaggertype:"string" example:"1.2747"`
}

// GetCrossRate godoc
// @Summary Cross rate
// @Description Units of the target currency bought by one unit of the source currency
// @Tags Rates
// @Produce json
// @Param from path string true "Source currency" example(GBP)
// @Param to path string true "Target currency" example(USD)
// @Success 200 {object} CrossRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates/cross/{from}/{to} [get]
func (h *Handler) GetCrossRate(w http.ResponseWriter, r *http.Request) {
	from, err := h.parseSymbol("from", chi.URLParam(r, "from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := h.parseSymbol("to", chi.URLParam(r, "to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	crossRate, err := h.service.CrossRate(from, to)
	if err != nil {
		writeQueryError(w, "GetCrossRate", err)
		return
	}
	writeJSON(w, http.StatusOK, CrossRateResponse{From: from.String(), To: to.String(), Rate: crossRate})
}
