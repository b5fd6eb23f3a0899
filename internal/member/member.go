// Package member resolves loyalty members and applies points after an order.
package member

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pos/internal/loyalty"
	"pos/internal/models"
	"pos/internal/store"
)

// MinLookupLength is the number of phone characters needed before a lookup runs.
const MinLookupLength = 9

var (
	ErrPhoneIncomplete    = errors.New("phone number is incomplete")
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberExpired      = errors.New("membership has expired")
	ErrMemberExists       = errors.New("member already registered")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrRewardInactive     = errors.New("reward is not active")
	ErrNicknameRequired   = errors.New("nickname is required")
)

type Service struct {
	members store.MemberStore
	rewards store.RewardStore
	ledger  store.PointLedger
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires the member stores. rewards and ledger may be nil when
// redemption and history are not used.
func NewService(members store.MemberStore, rewards store.RewardStore, ledger store.PointLedger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		members: members,
		rewards: rewards,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
	}
}

// NormalizePhone strips everything except digits.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup finds the member with phone. Fewer than MinLookupLength digits
// returns ErrPhoneIncomplete without touching the store.
func (s *Service) Lookup(ctx context.Context, phone string) (models.Member, error) {
	phone = NormalizePhone(phone)
	if len(phone) < MinLookupLength {
		return models.Member{}, ErrPhoneIncomplete
	}

	m, err := s.members.FindByPhone(ctx, phone)
	if err != nil {
		return models.Member{}, errors.Wrap(err, "find member")
	}
	if m == nil {
		return models.Member{}, ErrMemberNotFound
	}
	if m.Expired(s.now()) {
		return *m, ErrMemberExpired
	}
	return *m, nil
}

// Register creates a member with zero points.
func (s *Service) Register(ctx context.Context, phone, nickname string) (models.Member, error) {
	phone = NormalizePhone(phone)
	if len(phone) < MinLookupLength {
		return models.Member{}, ErrPhoneIncomplete
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Member{}, ErrNicknameRequired
	}

	existing, err := s.members.FindByPhone(ctx, phone)
	if err != nil {
		return models.Member{}, errors.Wrap(err, "find member")
	}
	if existing != nil {
		return *existing, ErrMemberExists
	}

	m, err := s.members.Insert(ctx, models.Member{
		Phone:     phone,
		Nickname:  nickname,
		Points:    0,
		Tier:      models.DefaultTier,
		CreatedAt: s.now(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.Member{}, ErrMemberExists
	}
	if err != nil {
		return models.Member{}, errors.Wrap(err, "insert member")
	}
	s.logger.Info("member registered", zap.String("phone", phone))
	return m, nil
}

// ApplyOrder adds the points earned by order and its total to the member's
// balance and spend. The update is read-modify-write with no version check.
func (s *Service) ApplyOrder(ctx context.Context, order models.Order, cfg loyalty.Config) (models.Member, int, error) {
	if order.MemberPhone == "" {
		return models.Member{}, 0, nil
	}

	m, err := s.members.FindByPhone(ctx, order.MemberPhone)
	if err != nil {
		return models.Member{}, 0, errors.Wrap(err, "find member")
	}
	if m == nil {
		return models.Member{}, 0, errors.Wrapf(ErrMemberNotFound, "phone %s", order.MemberPhone)
	}

	earned := cfg.Points(order.Total)
	points := m.Points + earned
	spent := decimal.NewFromFloat(m.TotalSpent).Add(decimal.NewFromFloat(order.Total)).InexactFloat64()

	updated, err := s.members.Update(ctx, m.Phone, store.MemberPatch{Points: &points, TotalSpent: &spent})
	if err != nil {
		return models.Member{}, 0, errors.Wrap(err, "update member")
	}

	if earned > 0 {
		s.record(ctx, models.PointHistory{
			MemberPhone: m.Phone,
			Type:        models.PointsEarned,
			Points:      earned,
			OrderID:     order.ID,
		})
	}
	return updated, earned, nil
}

// Redeem deducts the reward's points from the member.
func (s *Service) Redeem(ctx context.Context, phone, rewardID string) (models.Member, error) {
	if s.rewards == nil {
		return models.Member{}, errNoRewards
	}
	phone = NormalizePhone(phone)

	reward, err := s.rewards.FindReward(ctx, rewardID)
	if err != nil {
		return models.Member{}, errors.Wrap(err, "find reward")
	}
	if !reward.IsActive {
		return models.Member{}, ErrRewardInactive
	}

	m, err := s.members.FindByPhone(ctx, phone)
	if err != nil {
		return models.Member{}, errors.Wrap(err, "find member")
	}
	if m == nil {
		return models.Member{}, ErrMemberNotFound
	}
	if m.Points < reward.PointsRequired {
		return *m, ErrInsufficientPoints
	}

	points := m.Points - reward.PointsRequired
	updated, err := s.members.Update(ctx, phone, store.MemberPatch{Points: &points})
	if err != nil {
		return models.Member{}, errors.Wrap(err, "update member")
	}

	s.record(ctx, models.PointHistory{
		MemberPhone: phone,
		Type:        models.PointsRedeemed,
		Points:      reward.PointsRequired,
		Note:        reward.Name,
		RewardID:    reward.ID,
	})
	return updated, nil
}

func (s *Service) History(ctx context.Context, phone string) ([]models.PointHistory, error) {
	if s.ledger == nil {
		return []models.PointHistory{}, nil
	}
	return s.ledger.History(ctx, NormalizePhone(phone))
}

func (s *Service) List(ctx context.Context) ([]models.Member, error) {
	return s.members.FetchMembers(ctx)
}

func (s *Service) Delete(ctx context.Context, phone string) error {
	return s.members.Delete(ctx, NormalizePhone(phone))
}

// record writes a ledger row. Failures are logged only; the balance has
// already changed.
func (s *Service) record(ctx context.Context, h models.PointHistory) {
	if s.ledger == nil {
		return
	}
	h.CreatedAt = s.now()
	if _, err := s.ledger.Record(ctx, h); err != nil {
		s.logger.Warn("point history not recorded",
			zap.String("phone", h.MemberPhone),
			zap.String("type", h.Type),
			zap.Error(err),
		)
	}
}
