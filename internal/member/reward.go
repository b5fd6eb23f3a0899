package member

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pos/internal/models"
	"pos/internal/store"
)

var (
	ErrRewardName   = errors.New("reward name is required")
	ErrRewardPoints = errors.New("points required must be greater than 0")
)

var errNoRewards = errors.New("rewards are not configured")

func (s *Service) Rewards(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	if s.rewards == nil {
		return []models.Reward{}, nil
	}
	return s.rewards.FetchRewards(ctx, activeOnly)
}

func (s *Service) CreateReward(ctx context.Context, r models.Reward) (models.Reward, error) {
	if s.rewards == nil {
		return models.Reward{}, errNoRewards
	}
	r.ID = ""
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return models.Reward{}, ErrRewardName
	}
	if r.PointsRequired <= 0 {
		return models.Reward{}, ErrRewardPoints
	}
	r.CreatedAt = s.now()

	saved, err := s.rewards.AddReward(ctx, r)
	if err != nil {
		return models.Reward{}, errors.Wrap(err, "add reward")
	}
	s.logger.Info("reward created", zap.String("rewardId", saved.ID), zap.Int("pointsRequired", saved.PointsRequired))
	return saved, nil
}

func (s *Service) UpdateReward(ctx context.Context, id string, patch store.RewardPatch) (models.Reward, error) {
	if s.rewards == nil {
		return models.Reward{}, errNoRewards
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Reward{}, ErrRewardName
		}
		patch.Name = &name
	}
	if patch.PointsRequired != nil && *patch.PointsRequired <= 0 {
		return models.Reward{}, ErrRewardPoints
	}

	updated, err := s.rewards.UpdateReward(ctx, id, patch)
	if err != nil {
		return models.Reward{}, errors.Wrap(err, "update reward")
	}
	return updated, nil
}

func (s *Service) DeleteReward(ctx context.Context, id string) error {
	if s.rewards == nil {
		return errNoRewards
	}
	if err := s.rewards.DeleteReward(ctx, id); err != nil {
		return errors.Wrap(err, "delete reward")
	}
	return nil
}
