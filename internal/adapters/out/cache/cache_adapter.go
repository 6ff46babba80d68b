package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/clinic-schedule-calendar/internal/config"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/domain"
	"github.com/suchimauz/clinic-schedule-calendar/internal/core/ports/out"
)

type doctorsCache struct {
	cache *lru.Cache[string, *domain.Doctor]
}

type dashboardCache struct {
	counts    domain.DashboardCounts
	timestamp time.Time
	ttl       time.Duration
}

type CacheAdapter struct {
	doctorsCache   *doctorsCache
	dashboardCache *dashboardCache
	mu             sync.RWMutex
	logger         out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	lruDoctorsCache, err := lru.New[string, *domain.Doctor](cfg.Cache.DoctorsSize)
	if err != nil {
		logger.Error("cache.doctors.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DoctorsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		doctorsCache: &doctorsCache{
			cache: lruDoctorsCache,
		},
		dashboardCache: &dashboardCache{
			ttl: 5 * time.Minute,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

// Кэширование профилей врачей

func (c *CacheAdapter) GetDoctor(ctx context.Context, doctorID string) (*domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doctor, exists := c.doctorsCache.cache.Get(doctorID)
	if !exists {
		c.logger.Debug("cache.doctors.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	c.logger.Debug("cache.doctors.get.hit", out.LogFields{
		"doctorId": doctorID,
	})
	return doctor, true
}

func (c *CacheAdapter) StoreDoctor(ctx context.Context, doctor domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.doctors.store", out.LogFields{
		"doctorId": doctor.ID,
	})

	c.doctorsCache.cache.Add(doctor.ID, &doctor)
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorsCache.cache.Remove(doctorID)
}

// Кэширование счетчиков дашборда

func (c *CacheAdapter) GetDashboardCounts(ctx context.Context) (domain.DashboardCounts, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.dashboardCache.counts == nil || time.Since(c.dashboardCache.timestamp) > c.dashboardCache.ttl {
		return nil, false
	}

	return c.dashboardCache.counts, true
}

func (c *CacheAdapter) StoreDashboardCounts(ctx context.Context, counts domain.DashboardCounts) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dashboardCache.counts = counts
	c.dashboardCache.timestamp = time.Now()
}

func (c *CacheAdapter) InvalidateDashboardCounts(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dashboardCache.counts = nil
	c.dashboardCache.timestamp = time.Time{}
}
