package handler

import (
	"bytes"
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetTable godoc
// @Summary Rendered rate table
// @Description Plain text table headed by the base currency and as-of date
// @Tags Rates
// @Produce plain
// @Success 200 {string} string
// @Router /rates/table [get]
func (h *Handler) GetTable(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.service.Render(&buf); err != nil {
		msg := "ups, couldn't render rate table this time"
		logrus.WithError(err).WithField("handler", "GetTable").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
