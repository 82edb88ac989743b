//go:build integration

package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"validarfc/internal/validation/models"
	"validarfc/internal/validation/store/history"
	"validarfc/pkg/platform/sentinel"
	"validarfc/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	contractSuite
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.GetManager().GetRedis(t)
	suite.Run(t, &RedisStoreSuite{
		contractSuite: contractSuite{
			newStore: func(t *testing.T) historyStore {
				require.NoError(t, rc.FlushAll(context.Background()))
				return history.NewRedis(rc.Client, "")
			},
		},
	})
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))
	require.NoError(t, rc.Client.LPush(ctx, history.DefaultRedisKey, "not json").Err())

	_, err := history.NewRedis(rc.Client, "").ListPage(ctx, models.PageRequest{Page: 1, PerPage: 5})
	require.ErrorIs(t, err, sentinel.ErrCorrupt)
}
