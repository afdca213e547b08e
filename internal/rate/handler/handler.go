package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fxconv/internal/domain"
	"fxconv/internal/rate"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SymbolValidator interface {
	Parse(raw string) (domain.Symbol, error)
}

type RateService interface {
	Convert(amount decimal.Decimal, from, to domain.Symbol) (decimal.Decimal, decimal.Decimal, error)
	CrossRate(from, to domain.Symbol) (decimal.Decimal, error)
	RatesWithStatus(symbols []domain.Symbol) ([]rate.Row, rate.Status, error)
	Currencies(sorted bool) []domain.Symbol
	Status() rate.Status
	SetBase(sym domain.Symbol) error
	Render(w io.Writer) error
	Reload(ctx context.Context) (rate.Status, error)
}

type Handler struct {
	validator SymbolValidator
	service   RateService
}

func NewRateHandler(validator SymbolValidator, service RateService) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeQueryError maps a query failure to a response; the table is valid
// whatever the outcome.
func writeQueryError(w http.ResponseWriter, handlerName string, err error) {
	if errors.Is(err, domain.ErrUnknownCurrency) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	msg := "ups, couldn't answer rate query this time"
	logrus.WithError(err).WithField("handler", handlerName).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func (h *Handler) parseSymbol(field, raw string) (domain.Symbol, error) {
	sym, err := h.validator.Parse(raw)
	if err != nil {
		return "", &domain.FormatError{Field: field, Value: raw, Err: err}
	}
	return sym, nil
}

type StatusResponse struct {
	Base       string `json:"base" example:"EUR"`
	AsOf       string `json:"as_of" example:"2024-01-15"`
	Source     string `json:"source"`
	FromBackup bool   `json:"from_backup"`
	Entries    int    `json:"entries" example:"31"`
}

func toStatusResponse(st rate.Status) StatusResponse {
	return StatusResponse{
		Base:       st.Base.String(),
		AsOf:       st.AsOf.Format("2006-01-02"),
		Source:     st.Source,
		FromBackup: st.FromBackup,
		Entries:    st.Entries,
	}
}
