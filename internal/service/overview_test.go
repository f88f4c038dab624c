package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/mocks"
	"github.com/txpay/txpay-admin/internal/ports"
)

func TestLoadOverview(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	repo := mocks.NewMockAuditRepository(ctrl)

	api.EXPECT().Profile(gomock.Any()).Return(model.Profile{ID: "u1"}, nil)
	api.EXPECT().Health(gomock.Any()).Return(model.Health{}, errors.New("down"))
	repo.EXPECT().Recent(gomock.Any(), 5).Return([]ports.AuditEntry{{ID: 1}}, nil)

	ov, err := LoadOverview(context.Background(), api, NewAuditService(AuditServiceOptions{Repo: repo}), 5)

	require.NoError(t, err)
	assert.Equal(t, "u1", ov.Profile.ID)
	require.Error(t, ov.HealthErr)
	assert.True(t, ov.AuditActive)
	assert.Len(t, ov.Audit, 1)
}

func TestLoadOverview_ProfileFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)

	boom := errors.New("unauthorized")
	api.EXPECT().Profile(gomock.Any()).Return(model.Profile{}, boom)
	api.EXPECT().Health(gomock.Any()).Return(model.Health{Status: "ok"}, nil).AnyTimes()

	_, err := LoadOverview(context.Background(), api, nil, 5)

	require.ErrorIs(t, err, boom)
}

func TestLoadOverview_AuditDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTXPayAPI(ctrl)
	api.EXPECT().Profile(gomock.Any()).Return(model.Profile{}, nil)
	api.EXPECT().Health(gomock.Any()).Return(model.Health{Status: "ok"}, nil)

	ov, err := LoadOverview(context.Background(), api, NewAuditService(AuditServiceOptions{}), 5)

	require.NoError(t, err)
	assert.False(t, ov.AuditActive)
	assert.Equal(t, "ok", ov.Health.Status)
}
