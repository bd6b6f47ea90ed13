package quotas

import (
	"context"
	"strconv"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quota:"

// consumeScript runs inside Redis, which executes scripts one at a time.
// The key lives for one window past its last write; by then the window it
// holds has elapsed anyway.
var consumeScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local start = now
local count = 0
local stored = redis.call('HMGET', key, 'window_start', 'count')
if stored[1] and stored[2] then
	start = tonumber(stored[1])
	count = tonumber(stored[2])
	if now - start >= window then
		start = now
		count = 0
	end
end

local granted = 0
if count < limit then
	count = count + 1
	granted = 1
end

redis.call('HSET', key, 'window_start', start, 'count', count, 'limit', limit)
redis.call('EXPIRE', key, window)
return {granted, start, count}
`)

type RedisRepository struct {
	cli redis.UniversalClient
}

func NewRedisRepository(cli redis.UniversalClient) RedisRepository {
	return RedisRepository{cli: cli}
}

func (r RedisRepository) Consume(ctx context.Context, subject string, limit, windowSecs, now int64) (Record, bool, error) {
	res, err := consumeScript.Run(ctx, r.cli, []string{r.key(subject)}, limit, windowSecs, now).Int64Slice()
	if err != nil {
		return Record{}, false, errors.WithMessage(err, "consume script")
	}
	if len(res) != 3 {
		return Record{}, false, errors.Errorf("consume script: unexpected reply %v", res)
	}

	return Record{
		Subject:     subject,
		WindowStart: res[1],
		Count:       res[2],
		Limit:       limit,
	}, res[0] == 1, nil
}

func (r RedisRepository) Get(ctx context.Context, subject string) (*Record, error) {
	vals, err := r.cli.HMGet(ctx, r.key(subject), "window_start", "count", "limit").Result()
	if err != nil {
		return nil, errors.WithMessage(err, "hmget")
	}
	if len(vals) != 3 || vals[0] == nil || vals[1] == nil {
		return nil, common.ErrorNotFound
	}

	rec := &Record{Subject: subject}
	for i, dst := range []*int64{&rec.WindowStart, &rec.Count, &rec.Limit} {
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.WithMessagef(err, "parse field %d", i)
		}
		*dst = v
	}
	return rec, nil
}

func (r RedisRepository) key(subject string) string {
	return keyPrefix + subject
}
