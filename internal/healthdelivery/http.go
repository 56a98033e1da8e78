// Package healthdelivery reports whether the service can reach its store.
package healthdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// Pinger checks the store connection.
//
//go:generate mockgen -source http.go -destination http_mock.go -package healthdelivery
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler facilitates health check delivery layer logic.
type Handler struct {
	db      Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewHandler returns health handler. A zero timeout means one second.
func NewHandler(db Pinger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = time.Second
	}

	return &Handler{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}
}

type status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type response struct {
	Data  status `json:"data"`
	Error string `json:"error,omitempty"`
}

// Check handles http request to check service health.
func (h *Handler) Check(gctx *gin.Context) {
	ctx, cancel := context.WithTimeout(gctx.Request.Context(), h.timeout)
	defer cancel()

	timestamp := h.now().UTC().Format(time.RFC3339)

	if err := h.db.PingContext(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("health check failed")
		gctx.JSON(http.StatusServiceUnavailable, response{
			Data:  status{Status: "unavailable", Timestamp: timestamp},
			Error: errorspkg.ErrStoreUnavailable.Error(),
		})

		return
	}

	gctx.JSON(http.StatusOK, response{Data: status{Status: "ok", Timestamp: timestamp}})
}
