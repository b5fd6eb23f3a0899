// Package orders manages stored orders after checkout: settlement of
// delivery payouts, day close and the daily summary.
package orders

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos/internal/models"
	"pos/internal/store"
)

var (
	ErrAlreadySettled = errors.New("order is already settled")
	ErrInvalidAmount  = errors.New("actual amount must not be negative")
	ErrArchived       = errors.New("order belongs to a closed day")
)

type Service struct {
	orders store.OrderStore
	logger *zap.Logger
}

func NewService(orders store.OrderStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, logger: logger}
}

// Page is one page of open orders, newest first.
type Page struct {
	Orders     []models.Order `json:"data"`
	Page       int64          `json:"page"`
	Limit      int64          `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

func (s *Service) List(ctx context.Context, page, limit int64) (Page, error) {
	filter := store.OrderFilter{Skip: (page - 1) * limit, Limit: limit}

	total, err := s.orders.CountOrders(ctx, filter)
	if err != nil {
		return Page{}, errors.Wrap(err, "count orders")
	}
	list, err := s.orders.FetchOrders(ctx, filter)
	if err != nil {
		return Page{}, errors.Wrap(err, "fetch orders")
	}
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page{Orders: list, Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// All returns every stored order including closed days, newest first.
func (s *Service) All(ctx context.Context) ([]models.Order, error) {
	list, err := s.orders.FetchOrders(ctx, store.OrderFilter{IncludeHistory: true})
	if err != nil {
		return nil, errors.Wrap(err, "fetch orders")
	}
	return list, nil
}

// Pending lists open orders whose payout has not been reconciled.
func (s *Service) Pending(ctx context.Context) ([]models.Order, error) {
	list, err := s.orders.FetchOrders(ctx, store.OrderFilter{UnsettledOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "fetch pending orders")
	}
	return list, nil
}

// Settle records the amount actually received for an order. An order can be
// settled once; pos orders are settled at checkout.
func (s *Service) Settle(ctx context.Context, id string, actual float64) (models.Order, error) {
	if actual < 0 {
		return models.Order{}, ErrInvalidAmount
	}

	o, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return models.Order{}, errors.Wrap(err, "find order")
	}
	if o.IsHistory {
		return models.Order{}, ErrArchived
	}
	if o.IsSettled {
		return o, ErrAlreadySettled
	}

	updated, err := s.orders.SettleOrder(ctx, id, actual)
	if errors.Is(err, store.ErrConflict) {
		// lost the race against another settlement or the day close
		return s.settleConflict(ctx, id)
	}
	if err != nil {
		return models.Order{}, errors.Wrap(err, "settle order")
	}
	s.logger.Info("order settled",
		zap.String("orderId", id),
		zap.Float64("total", updated.Total),
		zap.Float64("actualAmount", actual),
	)
	return updated, nil
}

func (s *Service) settleConflict(ctx context.Context, id string) (models.Order, error) {
	o, err := s.orders.FindOrder(ctx, id)
	if err != nil {
		return models.Order{}, errors.Wrap(err, "find order")
	}
	if o.IsHistory {
		return models.Order{}, ErrArchived
	}
	return o, ErrAlreadySettled
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return errors.Wrap(err, "delete order")
	}
	return nil
}

// Clear deletes every open order. Closed days are kept.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.orders.ClearOrders(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "clear orders")
	}
	s.logger.Warn("open orders cleared", zap.Int64("count", n))
	return n, nil
}

// CloseDay summarizes the open orders and archives exactly those. Orders
// stored while the day is closing stay open for the next day.
func (s *Service) CloseDay(ctx context.Context) (DaySummary, error) {
	list, err := s.orders.FetchOrders(ctx, store.OrderFilter{})
	if err != nil {
		return DaySummary{}, errors.Wrap(err, "fetch orders")
	}
	summary := Summarize(list)

	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	n, err := s.orders.CloseDayOrders(ctx, ids)
	if err != nil {
		return DaySummary{}, errors.Wrap(err, "close day")
	}
	s.logger.Info("day closed", zap.Int64("archived", n), zap.Float64("actualIncome", summary.ActualIncome))
	return summary, nil
}

// ChannelTotal is the share of one channel in a day summary.
type ChannelTotal struct {
	Orders       int     `json:"orders"`
	Gross        float64 `json:"gross"`
	ActualIncome float64 `json:"actualIncome"`
}

// DaySummary totals the open orders. Gross is the sum of order totals;
// ActualIncome sums what was actually received.
type DaySummary struct {
	Orders       int                             `json:"orders"`
	Gross        float64                         `json:"gross"`
	ActualIncome float64                         `json:"actualIncome"`
	Cash         float64                         `json:"cash"`
	Transfer     float64                         `json:"transfer"`
	Unsettled    int                             `json:"unsettled"`
	ByChannel    map[models.Channel]ChannelTotal `json:"byChannel"`
}

func (s *Service) Summary(ctx context.Context) (DaySummary, error) {
	list, err := s.orders.FetchOrders(ctx, store.OrderFilter{})
	if err != nil {
		return DaySummary{}, errors.Wrap(err, "fetch orders")
	}
	return Summarize(list), nil
}

// Summarize builds a DaySummary from orders. PromptPay and transfer count
// as transfer income.
func Summarize(list []models.Order) DaySummary {
	type acc struct {
		orders        int
		gross, actual decimal.Decimal
	}
	var gross, actual, cash, transfer decimal.Decimal
	unsettled := 0
	perChannel := map[models.Channel]*acc{}

	for _, o := range list {
		total := decimal.NewFromFloat(o.Total)
		received := decimal.NewFromFloat(o.ActualAmount)

		gross = gross.Add(total)
		actual = actual.Add(received)
		if o.PaymentMethod == models.PaymentCash {
			cash = cash.Add(received)
		} else {
			transfer = transfer.Add(received)
		}
		if !o.IsSettled {
			unsettled++
		}

		a, ok := perChannel[o.Channel]
		if !ok {
			a = &acc{}
			perChannel[o.Channel] = a
		}
		a.orders++
		a.gross = a.gross.Add(total)
		a.actual = a.actual.Add(received)
	}

	summary := DaySummary{
		Orders:       len(list),
		Gross:        gross.InexactFloat64(),
		ActualIncome: actual.InexactFloat64(),
		Cash:         cash.InexactFloat64(),
		Transfer:     transfer.InexactFloat64(),
		Unsettled:    unsettled,
		ByChannel:    make(map[models.Channel]ChannelTotal, len(perChannel)),
	}
	for ch, a := range perChannel {
		summary.ByChannel[ch] = ChannelTotal{
			Orders:       a.orders,
			Gross:        a.gross.InexactFloat64(),
			ActualIncome: a.actual.InexactFloat64(),
		}
	}
	return summary
}
