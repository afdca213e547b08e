package handler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"5"`
	From   string          `json:"from" example:"EUR"`
	To     string          `json:"to" example:"USD"`
	Rate   decimal.Decimal `json:"rate" swaggertype:"string" example:"1.095"`
	Result decimal.Decimal `json:"result" swaggertype:"string" example:"5.475"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts amount units of one currency into another using the current table
// @Tags Rates
// @Produce json
// @Param amount query string true "Amount to convert" example(5)
// @Param from query string true "Source currency" example(EUR)
// @Param to query string true "Target currency" example(USD)
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /rates/convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rawAmount := strings.TrimSpace(q.Get("amount"))
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount "+`"`+rawAmount+`"`)
		return
	}
	from, err := h.parseSymbol("from", q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := h.parseSymbol("to", q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, crossRate, err := h.service.Convert(amount, from, to)
	if err != nil {
		writeQueryError(w, "Convert", err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount: amount,
		From:   from.String(),
		To:     to.String(),
		Rate:   crossRate,
		Result: result,
	})
}
