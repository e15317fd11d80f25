package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/skill_swap/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Bus carries events between server instances so a user connected to any
// instance receives them.
type Bus interface {
	Publish(ctx context.Context, recipients []uuid.UUID, ev Event) error
	StartForwarder(ctx context.Context, onEvent func(recipients []uuid.UUID, ev Event)) error
	Close() error
}

type redisBus struct {
	log     *logger.Logger
	rdb     *redis.Client
	channel string
}

func NewRedisBus(log *logger.Logger, addr, channel string) (Bus, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if strings.TrimSpace(channel) == "" {
		channel = "skillswap"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("component", "redis_bus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, recipients []uuid.UUID, ev Event) error {
	raw, err := json.Marshal(envelope{Recipients: recipients, Event: ev})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onEvent func(recipients []uuid.UUID, ev Event)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var env envelope
				if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
					b.log.Warn("bad bus payload", "error", err)
					continue
				}
				onEvent(env.Recipients, env.Event)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
