package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrMissingConnectionString = errors.New("REDIS_CONNECTION_STRING environment variable is not set")
	ErrQueueNameRequired       = errors.New("queue name is required")
)

// RedisOptions configures the store connection.
type RedisOptions struct {
	// URL is the connection string, e.g. "redis://:password@host:6379/0".
	URL string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Stats is a consistent snapshot of one queue and the worker registry.
type Stats struct {
	Pending       int64
	ActiveWorkers int64
}

// Total is the number of active jobs reported by the composite strategy.
func (s Stats) Total() int64 {
	return s.Pending + s.ActiveWorkers
}

// RedisQueue reads queue and worker state. It is created once at startup
// and shared by every request; the underlying client is safe for
// concurrent use.
type RedisQueue struct {
	Client *redis.Client
}

func NewRedisQueue(opts RedisOptions) (*RedisQueue, error) {
	if opts.URL == "" {
		return nil, ErrMissingConnectionString
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	return &RedisQueue{Client: redis.NewClient(redisOpts)}, nil
}

// Length returns the number of pending tokens in the queue.
func (rq *RedisQueue) Length(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrQueueNameRequired
	}
	n, err := rq.Client.LLen(ctx, QueueKey(name)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read length of queue %s: %w", name, err)
	}
	return n, nil
}

// Stats reads the queue length and the active worker count inside a single
// MULTI/EXEC, so both values describe the same instant. A worker is active
// when its id is registered and it has an entry in the task hash, whatever
// queue that task came from.
func (rq *RedisQueue) Stats(ctx context.Context, name string) (Stats, error) {
	if name == "" {
		return Stats{}, ErrQueueNameRequired
	}

	var (
		llen    *redis.IntCmd
		workers *redis.StringSliceCmd
		busy    *redis.StringSliceCmd
	)
	_, err := rq.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		llen = pipe.LLen(ctx, QueueKey(name))
		workers = pipe.SMembers(ctx, WorkerIDKey)
		busy = pipe.HKeys(ctx, WorkerTaskKey)
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats of queue %s: %w", name, err)
	}

	assigned := make(map[string]struct{}, len(busy.Val()))
	for _, id := range busy.Val() {
		assigned[id] = struct{}{}
	}

	var active int64
	for _, id := range workers.Val() {
		if _, ok := assigned[id]; ok {
			active++
		}
	}

	return Stats{Pending: llen.Val(), ActiveWorkers: active}, nil
}

// ActiveJobs counts active jobs for the queue using the given strategy.
func (rq *RedisQueue) ActiveJobs(ctx context.Context, name string, strategy Strategy) (int64, error) {
	switch strategy {
	case StrategySimple:
		return rq.Length(ctx, name)
	case StrategyComposite:
		stats, err := rq.Stats(ctx, name)
		if err != nil {
			return 0, err
		}
		return stats.Total(), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
}

func (rq *RedisQueue) Ping(ctx context.Context) error {
	if err := rq.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach Redis: %w", err)
	}
	return nil
}

func (rq *RedisQueue) Close() error {
	return rq.Client.Close()
}
