package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/projection"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	KeyPlanningRangeDays = "prefs::planningRangeDays"
	KeyPlanningEndDate   = "prefs::planningEndDate"
)

// Store persists the planning horizon. Only the day count and the optional end date are kept.
type Store struct {
	mutex       sync.Mutex
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

// LoadHorizon reads the stored horizon. A missing or invalid day count falls back to the default,
// one above the maximum is clamped. A stored end date that is no longer valid is dropped and the
// stored day count is kept.
func (s *Store) LoadHorizon(ctx context.Context, today calendar.Day) projection.Horizon {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	horizon := projection.NewHorizon(projection.DefaultHorizonDays)

	rangeStr, err := s.redisClient.Get(ctx, KeyPlanningRangeDays).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		log.Warnf("preferences: get planning range: %s", err)
	default:
		if days, err := strconv.Atoi(rangeStr); err == nil && days >= projection.MinHorizonDays {
			horizon.SetDays(days)
		} else {
			log.Debugf("preferences: ignoring invalid planning range [%s]", rangeStr)
		}
	}

	endStr, err := s.redisClient.Get(ctx, KeyPlanningEndDate).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return horizon
	case err != nil:
		log.Warnf("preferences: get planning end date: %s", err)
		return horizon
	}

	end, err := calendar.ParseDay(endStr)
	if err == nil {
		err = horizon.SetEndDate(end, today)
	}
	if err != nil {
		log.Debugf("preferences: dropping planning end date [%s]: %s", endStr, err)
		if err := s.redisClient.Del(ctx, KeyPlanningEndDate).Err(); err != nil {
			log.Warnf("preferences: delete planning end date: %s", err)
		}
	}

	return horizon
}

// SaveDays makes days the authoritative horizon and removes any end date.
// Days outside [1, 365] are rejected and nothing is written.
func (s *Store) SaveDays(ctx context.Context, days int) (projection.Horizon, error) {
	if err := projection.ValidateDays(days); err != nil {
		return projection.Horizon{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	horizon := projection.NewHorizon(days)
	if err := s.redisClient.Set(ctx, KeyPlanningRangeDays, strconv.Itoa(horizon.Days), 0).Err(); err != nil {
		return projection.Horizon{}, fmt.Errorf("set planning range: %w", err)
	}
	if err := s.redisClient.Del(ctx, KeyPlanningEndDate).Err(); err != nil {
		return projection.Horizon{}, fmt.Errorf("delete planning end date: %w", err)
	}

	return horizon, nil
}

// SaveEndDate derives the day count from end and stores both. An invalid end date is rejected
// and nothing is written.
func (s *Store) SaveEndDate(ctx context.Context, end, today calendar.Day) (projection.Horizon, error) {
	var horizon projection.Horizon
	if err := horizon.SetEndDate(end, today); err != nil {
		return projection.Horizon{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.redisClient.Set(ctx, KeyPlanningEndDate, end.Key(), 0).Err(); err != nil {
		return projection.Horizon{}, fmt.Errorf("set planning end date: %w", err)
	}
	if err := s.redisClient.Set(ctx, KeyPlanningRangeDays, strconv.Itoa(horizon.Days), 0).Err(); err != nil {
		return projection.Horizon{}, fmt.Errorf("set planning range: %w", err)
	}

	return horizon, nil
}

// ClearEndDate removes the end date; the day count derived from it stays.
func (s *Store) ClearEndDate(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.redisClient.Del(ctx, KeyPlanningEndDate).Err(); err != nil {
		return fmt.Errorf("delete planning end date: %w", err)
	}
	return nil
}
