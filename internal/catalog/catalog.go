package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListActiveServices(ctx context.Context, category string) ([]models.Service, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	ListActiveBarbers(ctx context.Context) ([]models.Barber, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Catalog is the read side of services and barbers. Service lookups are
// read-through cached; a failing cache only costs a database round trip.
type Catalog struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// New builds a Catalog; c may be nil to disable caching.
func New(repo Repository, c Cache, ttl time.Duration) *Catalog {
	return &Catalog{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func serviceKey(id uint) string {
	return fmt.Sprintf("catalog:service:%d", id)
}

func (c *Catalog) GetService(ctx context.Context, id uint) (*models.Service, error) {
	key := serviceKey(id)

	if c.cache != nil {
		var svc models.Service
		err := c.cache.Get(ctx, key, &svc)
		if err == nil {
			return &svc, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
	}

	svc, err := c.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Save(ctx, key, svc, c.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}

	return svc, nil
}

func (c *Catalog) GetServiceDuration(ctx context.Context, id uint) (int, error) {
	svc, err := c.GetService(ctx, id)
	if err != nil {
		return 0, err
	}
	return svc.DurationMinutes, nil
}

func (c *Catalog) ListActiveServices(ctx context.Context, category string) ([]models.Service, error) {
	return c.repo.ListActiveServices(ctx, category)
}

func (c *Catalog) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	return c.repo.GetBarber(ctx, id)
}

func (c *Catalog) ListActiveBarbers(ctx context.Context) ([]models.Barber, error) {
	return c.repo.ListActiveBarbers(ctx)
}
