package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotHoldRepository places short-lived holds on (date, timeslot, court) keys
// while a customer is in the payment step, so two sessions cannot both reach
// the charge for the same slot. Holds expire on their own; the reservations
// table stays the source of truth.
type SlotHoldRepository interface {
	AcquireAll(ctx context.Context, date, courtID string, slotIDs []string, token string, ttl time.Duration) (bool, error)
	ReleaseAll(ctx context.Context, date, courtID string, slotIDs []string, token string) error
}

type redisSlotHoldRepository struct {
	client *redis.Client
}

func NewRedisSlotHoldRepository(client *redis.Client) SlotHoldRepository {
	return &redisSlotHoldRepository{client: client}
}

func holdKey(date, slotID, courtID string) string {
	return fmt.Sprintf("hold:%s:%s:%s", date, slotID, courtID)
}

// AcquireAll takes a SETNX hold on every requested slot. If any slot is
// already held by someone else, the holds taken so far are released and
// (false, nil) is returned.
func (r *redisSlotHoldRepository) AcquireAll(ctx context.Context, date, courtID string, slotIDs []string, token string, ttl time.Duration) (bool, error) {
	acquired := make([]string, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		ok, err := r.client.SetNX(ctx, holdKey(date, slotID, courtID), token, ttl).Result()
		if err != nil {
			_ = r.ReleaseAll(ctx, date, courtID, acquired, token)
			return false, fmt.Errorf("acquire hold: %w", err)
		}
		if !ok {
			_ = r.ReleaseAll(ctx, date, courtID, acquired, token)
			return false, nil
		}
		acquired = append(acquired, slotID)
	}
	return true, nil
}

// ReleaseAll deletes only holds still owned by token; expired keys taken over
// by another session are left alone.
func (r *redisSlotHoldRepository) ReleaseAll(ctx context.Context, date, courtID string, slotIDs []string, token string) error {
	for _, slotID := range slotIDs {
		key := holdKey(date, slotID, courtID)
		val, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return fmt.Errorf("release hold: %w", err)
		}
		if val == token {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return fmt.Errorf("release hold: %w", err)
			}
		}
	}
	return nil
}
