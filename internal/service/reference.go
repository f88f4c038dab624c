package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/txpay/txpay-admin/internal/domain/model"
	"github.com/txpay/txpay-admin/internal/ports"
)

// referenceFetchLimit is the page size used to load dropdown options.
const referenceFetchLimit = 100

// ReferenceServiceOptions groups dependencies for ReferenceService.
type ReferenceServiceOptions struct {
	Cache     ports.Cache // optional
	TTL       time.Duration
	KeyPrefix string
	Logger    *slog.Logger
}

// ReferenceService serves dropdown reference data such as merchant options.
// Results are cached per user and concurrent misses share one API call.
type ReferenceService struct {
	cache  ports.Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
	group  singleflight.Group
}

// NewReferenceService constructs a ReferenceService.
func NewReferenceService(opts ReferenceServiceOptions) *ReferenceService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceService{cache: opts.Cache, ttl: ttl, prefix: opts.KeyPrefix, logger: logger}
}

// MerchantOptions returns the merchants visible to userID as {id, name} pairs.
// Cache failures degrade to a live fetch.
func (s *ReferenceService) MerchantOptions(ctx context.Context, userID string, api ports.TXPayAPI) ([]model.MerchantOption, error) {
	key := s.prefix + "merchants:" + userID

	if opts, ok := s.cached(ctx, key); ok {
		return opts, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		page, err := api.ListMerchants(ctx, model.ListQuery{Page: 1, Limit: referenceFetchLimit})
		if err != nil {
			return nil, err
		}
		opts := make([]model.MerchantOption, 0, len(page.Data))
		for _, m := range page.Data {
			opts = append(opts, model.MerchantOption{ID: m.ID, Name: m.Name})
		}
		s.store(ctx, key, opts)
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	opts, _ := v.([]model.MerchantOption)
	return opts, nil
}

// InvalidateMerchants drops the cached options for userID.
func (s *ReferenceService) InvalidateMerchants(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.prefix+"merchants:"+userID); err != nil {
		s.logger.WarnContext(ctx, "reference cache delete failed", "error", err)
	}
}

func (s *ReferenceService) cached(ctx context.Context, key string) ([]model.MerchantOption, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "reference cache read failed", "error", err, "key", key)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var opts []model.MerchantOption
	if err := json.Unmarshal(raw, &opts); err != nil {
		s.logger.WarnContext(ctx, "reference cache entry unreadable", "error", err, "key", key)
		return nil, false
	}
	return opts, true
}

func (s *ReferenceService) store(ctx context.Context, key string, opts []model.MerchantOption) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "reference cache write failed", "error", err, "key", key)
	}
}
