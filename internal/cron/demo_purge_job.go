package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const defaultDemoPurgeGrace = 24 * time.Hour

type demoProductPurger interface {
	DeleteExpiredDemo(ctx context.Context, cutoff time.Time) (int64, error)
}

// DemoPurgeJobParams configure the expired demo product purge.
type DemoPurgeJobParams struct {
	Logger  *logger.Logger
	Catalog demoProductPurger
	// Grace keeps expired demo products around this long after they disappear
	// from storefronts.
	Grace time.Duration
}

func NewDemoPurgeJob(params DemoPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	grace := params.Grace
	if grace <= 0 {
		grace = defaultDemoPurgeGrace
	}
	return &demoPurgeJob{
		logg:    params.Logger,
		catalog: params.Catalog,
		grace:   grace,
		now:     time.Now,
	}, nil
}

type demoPurgeJob struct {
	logg    *logger.Logger
	catalog demoProductPurger
	grace   time.Duration
	now     func() time.Time
}

func (j *demoPurgeJob) Name() string { return "demo-product-purge" }

func (j *demoPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.grace)
	deleted, err := j.catalog.DeleteExpiredDemo(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge demo products: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "expired demo products purged")
	return nil
}
