package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/dero-bridge/pkg/app/http"
	"github.com/chainsafe/dero-bridge/pkg/request"
	"github.com/chainsafe/dero-bridge/pkg/session"
)

const (
	maxBodySize    = 1 << 20
	requestTimeout = 60 * time.Second
)

// HTTP exposes the orchestrator over JSON endpoints
type HTTP struct {
	orch    *Orchestrator
	baseCtx context.Context
	logger  *zap.Logger
}

type sessionResponse struct {
	session.Snapshot
	Connected bool `json:"connected"`
}

// RegisterRoutes registers the session and bridge endpoints on the given chi
// router. Transfers started over HTTP run on baseCtx so they outlive the
// request that started them. The connect route waits on the wallet prompt
// and is the only one mounted without a request timeout.
func RegisterRoutes(r chi.Router, orch *Orchestrator, baseCtx context.Context, logger *zap.Logger) {
	h := &HTTP{
		orch:    orch,
		baseCtx: baseCtx,
		logger:  logger,
	}

	r.Post("/session/connect", apphttp.HandleError(h.connect))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/session", apphttp.HandleError(h.getSession))
		r.Post("/bridge/request", apphttp.HandleError(h.setRequest))
		r.Post("/bridge/execute", apphttp.HandleError(h.execute))
		r.Get("/bridge/state", apphttp.HandleError(h.getState))
	})
}

func (h *HTTP) getSession(w http.ResponseWriter, _ *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, newSessionResponse(h.orch.Session()))
	return nil
}

// connect blocks until the user answers the wallet prompt, however long that
// takes. The prompt runs on baseCtx and the server write deadline is lifted.
func (h *HTTP) connect(w http.ResponseWriter, _ *http.Request) error {
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Debug("Failed to lift write deadline", zap.Error(err))
	}

	snap, err := h.orch.Connect(h.baseCtx)
	if err != nil {
		return mapErr(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, newSessionResponse(snap))
	return nil
}

// setRequest accepts the request as a JSON body, or as walletAddress, symbol
// and amount query parameters when the body is empty.
func (h *HTTP) setRequest(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return apperrors.InvalidRequestError(err, "failed to read request")
	}

	var payload request.Payload
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return apperrors.InvalidRequestError(err, "invalid JSON")
		}
	} else {
		q := r.URL.Query()
		payload = request.Payload{
			WalletAddress: q.Get("walletAddress"),
			Symbol:        q.Get("symbol"),
			Amount:        q.Get("amount"),
		}
	}

	req, err := request.New(payload)
	if err != nil {
		return err
	}

	state, err := h.orch.SetRequest(r.Context(), req)
	if err != nil {
		return mapErr(err)
	}
	apphttp.WriteJSON(w, http.StatusOK, state)
	return nil
}

func (h *HTTP) execute(w http.ResponseWriter, _ *http.Request) error {
	state, err := h.orch.Start(h.baseCtx)
	if err != nil {
		return mapErr(err)
	}
	h.logger.Info("Transfer accepted", zap.String("attempt_id", state.ID.String()))
	apphttp.WriteJSON(w, http.StatusAccepted, state)
	return nil
}

func (h *HTTP) getState(w http.ResponseWriter, _ *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, h.orch.State())
	return nil
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	return sessionResponse{Snapshot: snap, Connected: snap.Connected()}
}

func mapErr(err error) error {
	if errors.Is(err, ErrInFlight) {
		return apphttp.WithStatus(http.StatusConflict, err)
	}
	return err
}
