package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService owns read and write access to doctor schedules.
// Reads are cached; the write path validates invariants and invalidates
// the cache entry.
type AvailabilityService interface {
	GetConfig(doctorID string) (*models.AvailabilityConfig, error)
	SetConfig(doctorID string, cfg models.AvailabilityConfig) error
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo  doctorRepo.DoctorRepository
	Cache *redis.Client
}

// GetConfig returns the doctor's availability config, serving from the Redis
// cache when possible. A cache failure falls back to the repository.
func (s *DefaultAvailabilityService) GetConfig(doctorID string) (*models.AvailabilityConfig, error) {
	logger := utils.GetLogger()
	cacheKey := utils.AvailabilityCachePrefix + doctorID
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var cfg models.AvailabilityConfig
			if err := json.Unmarshal([]byte(data), &cfg); err == nil {
				return &cfg, nil
			}
			logger.Warn("GetConfig: corrupt cache entry", zap.String("doctorID", doctorID))
		} else if err != redis.Nil {
			logger.Warn("GetConfig: cache read failed", zap.Error(err))
		}
	}

	cfg, err := s.Repo.GetAvailability(doctorID)
	if err != nil {
		logger.Error("GetConfig: repo error", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch availability")
	}
	if cfg == nil {
		return nil, nil
	}

	if s.Cache != nil {
		if data, err := json.Marshal(cfg); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, utils.AvailabilityCacheTTL).Err(); err != nil {
				logger.Warn("GetConfig: cache write failed", zap.Error(err))
			}
		}
	}
	return cfg, nil
}

// SetConfig validates and persists a doctor's schedule, then drops the stale
// cache entry.
func (s *DefaultAvailabilityService) SetConfig(doctorID string, cfg models.AvailabilityConfig) error {
	logger := utils.GetLogger()

	if err := ValidateSchedule(cfg); err != nil {
		return err
	}

	if err := s.Repo.SetAvailability(doctorID, cfg); err != nil {
		logger.Error("SetConfig: repo error", zap.String("doctorID", doctorID), zap.Error(err))
		return fmt.Errorf("failed to update availability")
	}

	if s.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Cache.Del(ctx, utils.AvailabilityCachePrefix+doctorID).Err(); err != nil {
			logger.Warn("SetConfig: cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
