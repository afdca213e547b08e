package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Refresh godoc
// @Summary Reload the rate table
// @Description Fetches the daily document again bypassing the document cache; on failure the previous table is kept
// @Tags Rates
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} errorResponse
// @Router /rates/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Reload(r.Context())
	if err != nil {
		logrus.WithError(err).WithField("handler", "Refresh").Warn("Rate table refresh failed")
		writeError(w, http.StatusServiceUnavailable, "rate sources unavailable, previous table kept")
		return
	}
	writeJSON(w, http.StatusOK, toStatusResponse(st))
}
