package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos/internal/cart"
	"pos/internal/catalog"
	"pos/internal/checkout"
	"pos/internal/member"
	"pos/internal/middleware"
	"pos/internal/orders"
	"pos/internal/pricing"
	"pos/internal/store"
	"pos/internal/terminal"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Catalog  *catalog.Service
	Terminal *terminal.Terminal
	Members  *member.Service
	Orders   *orders.Service
	Health   Pinger
	Logger   *zap.Logger
	Timeout  time.Duration
}

type Handlers struct {
	catalog  *catalog.Service
	terminal *terminal.Terminal
	members  *member.Service
	orders   *orders.Service
	health   Pinger
	logger   *zap.Logger
	timeout  time.Duration
}

func New(d Deps) *Handlers {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}
	return &Handlers{
		catalog:  d.Catalog,
		terminal: d.Terminal,
		members:  d.Members,
		orders:   d.Orders,
		health:   d.Health,
		logger:   d.Logger,
		timeout:  d.Timeout,
	}
}

func (h *Handlers) handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		h.logger.Error("panic recovered",
			zap.String("route", route),
			zap.Any("panic", r),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handlers) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handlers) respondWithError(c *gin.Context, status int, route string, message string) {
	h.logger.Info("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("error", message),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// fail maps a domain error to its HTTP status. Unknown errors are logged in
// full and hidden behind a generic message.
func (h *Handlers) fail(c *gin.Context, route string, err error) {
	var (
		validation checkout.ValidationError
		input      catalog.InputError
		submit     checkout.SubmitError
	)
	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "reason": validation.Reason})
		return
	case errors.As(err, &input):
		h.respondWithError(c, http.StatusBadRequest, route, input.Msg)
		return
	case errors.As(err, &submit):
		h.logger.Error("order submission failed", zap.String("route", route), zap.Error(submit.Err))
		h.respondWithError(c, http.StatusBadGateway, route, "order could not be saved, try again")
		return
	}

	status, ok := errorStatus(err)
	if !ok {
		h.logger.Error("request failed", zap.String("route", route), zap.Error(err))
		h.respondWithError(c, http.StatusInternalServerError, route, "internal server error")
		return
	}
	h.respondWithError(c, status, route, errors.Cause(err).Error())
}

func errorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrGroupNotFound),
		errors.Is(err, catalog.ErrOptionNotFound),
		errors.Is(err, member.ErrMemberNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrConflict),
		errors.Is(err, member.ErrMemberExists),
		errors.Is(err, checkout.ErrSubmissionInFlight),
		errors.Is(err, checkout.ErrNotCollecting),
		errors.Is(err, orders.ErrAlreadySettled),
		errors.Is(err, orders.ErrArchived):
		return http.StatusConflict, true
	case errors.Is(err, member.ErrMemberExpired):
		return http.StatusGone, true
	case errors.Is(err, member.ErrInsufficientPoints),
		errors.Is(err, member.ErrRewardInactive):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, member.ErrPhoneIncomplete),
		errors.Is(err, member.ErrNicknameRequired),
		errors.Is(err, member.ErrRewardName),
		errors.Is(err, member.ErrRewardPoints),
		errors.Is(err, orders.ErrInvalidAmount),
		errors.Is(err, terminal.ErrInvalidChannel),
		errors.Is(err, checkout.ErrUnknownChannel),
		errors.Is(err, pricing.ErrOptionNotOffered),
		errors.Is(err, cart.ErrMalformedKey):
		return http.StatusBadRequest, true
	}
	return 0, false
}

func (h *Handlers) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /healthz"
		if h.health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.health.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("route", route), zap.Error(err))
			h.respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
