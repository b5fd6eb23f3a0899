package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pos/internal/models"
	"pos/internal/store"
)

func TestCreateReward(t *testing.T) {
	f := newFixture(t)
	f.rewards.EXPECT().AddReward(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.Reward) (models.Reward, error) {
			assert.Empty(t, r.ID)
			assert.Equal(t, "Free Thai tea", r.Name)
			assert.Equal(t, f.now, r.CreatedAt)
			r.ID = "r1"
			return r, nil
		})

	r, err := f.svc.CreateReward(context.Background(), models.Reward{ID: "ignored", Name: " Free Thai tea ", PointsRequired: 50, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
}

func TestCreateRewardValidates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReward(context.Background(), models.Reward{Name: " ", PointsRequired: 10})
	assert.ErrorIs(t, err, ErrRewardName)

	_, err = f.svc.CreateReward(context.Background(), models.Reward{Name: "Cookie", PointsRequired: 0})
	assert.ErrorIs(t, err, ErrRewardPoints)
}

func TestUpdateRewardRejectsZeroPoints(t *testing.T) {
	f := newFixture(t)
	zero := 0

	_, err := f.svc.UpdateReward(context.Background(), "r1", store.RewardPatch{PointsRequired: &zero})
	assert.ErrorIs(t, err, ErrRewardPoints)
}

func TestUpdateRewardNotFound(t *testing.T) {
	f := newFixture(t)
	active := false
	f.rewards.EXPECT().UpdateReward(gomock.Any(), "r9", gomock.Any()).Return(models.Reward{}, store.ErrNotFound)

	_, err := f.svc.UpdateReward(context.Background(), "r9", store.RewardPatch{IsActive: &active})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRewardsWithoutStore(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	list, err := svc.Rewards(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Error(t, svc.DeleteReward(context.Background(), "r1"))
}
