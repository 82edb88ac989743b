package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"

	"github.com/redis/go-redis/v9"

	"validarfc/internal/validation/models"
	"validarfc/pkg/platform/sentinel"
)

// DefaultRedisKey is the list holding JSON encoded records, newest at the head.
const DefaultRedisKey = "validarfc:history"

// RedisStore keeps the log in a Redis list. LPUSH on append means the list is
// already in arrival order, newest first, so a page is a single LRANGE.
// Arrival order can differ from CreatedAt order by the few microseconds
// between capturing the timestamp and pushing the entry.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedis constructs a Redis-backed store. An empty key uses DefaultRedisKey.
func NewRedis(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Append(ctx context.Context, record models.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := s.client.LPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("push record: %w", classifyRedis(err))
	}
	return nil
}

// ListPage reads the length and the requested window in one MULTI/EXEC so the
// total and the items describe the same snapshot.
func (s *RedisStore) ListPage(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	start := int64(req.Offset())
	stop := int64(math.MaxInt64)
	if start <= math.MaxInt64-int64(req.PerPage) {
		stop = start + int64(req.PerPage) - 1
	}

	var (
		length *redis.IntCmd
		window *redis.StringSliceCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.LLen(ctx, s.key)
		window = pipe.LRange(ctx, s.key, start, stop)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", classifyRedis(err))
	}

	raw := window.Val()
	items := make([]models.Record, 0, len(raw))
	for _, entry := range raw {
		var r models.Record
		if err := json.Unmarshal([]byte(entry), &r); err != nil {
			return nil, fmt.Errorf("decode record: %w: %w", sentinel.ErrCorrupt, err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		items = append(items, r)
	}

	return &models.Page{
		Total:   int(length.Val()),
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   items,
	}, nil
}

func classifyRedis(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}
