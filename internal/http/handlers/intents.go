package handlers

import (
	"errors"
	"io"
	nethttp "net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/live-scores-service/internal/state"
)

const maxIntentBody = 4 << 10

type intentRequest struct {
	Type    string `json:"type" validate:"required"`
	MatchID string `json:"matchId" validate:"omitempty,max=64"`
	Wait    bool   `json:"wait"`
}

// Intents accepts {"type": "...", "matchId": "..."} and feeds it to the container.
func (h *Handler) Intents(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req intentRequest
	body := nethttp.MaxBytesReader(w, r.Body, maxIntentBody)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, nethttp.StatusBadRequest, "empty body", h.logger)
			return
		}
		writeError(w, r, nethttp.StatusBadRequest, "invalid json body", h.logger)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid "+verrs[0].Field(), h.logger)
			return
		}
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	kind, err := state.ParseIntentType(req.Type)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	intent := state.Intent{Type: kind, MatchID: req.MatchID}
	if err := intent.Validate(); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	h.handleIntent(w, r, intent, req.Wait || wantsWait(r))
}
