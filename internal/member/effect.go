package member

import (
	"context"

	"go.uber.org/zap"

	"pos/internal/loyalty"
	"pos/internal/models"
)

// LoyaltyEffect credits points to the member attached to a confirmed order.
// It satisfies checkout.PostCheckoutEffect.
type LoyaltyEffect struct {
	svc *Service
	cfg loyalty.Config
}

func NewLoyaltyEffect(svc *Service, cfg loyalty.Config) *LoyaltyEffect {
	return &LoyaltyEffect{svc: svc, cfg: cfg}
}

func (e *LoyaltyEffect) AfterCheckout(ctx context.Context, order models.Order) error {
	m, earned, err := e.svc.ApplyOrder(ctx, order, e.cfg)
	if err != nil {
		return err
	}
	e.svc.logger.Info("points credited",
		zap.String("orderId", order.ID),
		zap.String("phone", m.Phone),
		zap.Int("earned", earned),
		zap.Int("balance", m.Points),
	)
	return nil
}
