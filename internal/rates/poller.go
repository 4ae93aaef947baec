package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"vistonomade/pkg/types"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const redisKeyFmt = "rates:%s"

// Fetcher is the quote source the poller refreshes from.
type Fetcher interface {
	Quote(ctx context.Context, pair string) (*types.ExchangeRate, error)
}

// Poller refreshes one currency pair on a fixed interval and keeps the
// last-known quote in memory, mirrored to Redis so other instances can pick
// it up. Refresh failures are logged and the stale quote stays served.
type Poller struct {
	pair     string
	interval time.Duration
	fetcher  Fetcher
	rdb      *redis.Client
	logger   *logrus.Logger

	mu   sync.RWMutex
	last *types.ExchangeRate
}

func NewPoller(pair string, interval time.Duration, fetcher Fetcher, rdb *redis.Client, logger *logrus.Logger) *Poller {
	return &Poller{
		pair:     pair,
		interval: interval,
		fetcher:  fetcher,
		rdb:      rdb,
		logger:   logger,
	}
}

// Run refreshes immediately, then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Rate returns the last-known quote, which may be stale. The second return
// is false until the first successful refresh.
func (p *Poller) Rate() (types.ExchangeRate, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return types.ExchangeRate{}, false
	}
	return *p.last, true
}

func (p *Poller) refresh(ctx context.Context) {
	quote, err := p.fetcher.Quote(ctx, p.pair)
	if err != nil {
		p.logger.WithError(err).WithField("pair", p.pair).Warn("rate refresh failed, keeping last-known quote")
		return
	}

	p.mu.Lock()
	p.last = quote
	p.mu.Unlock()

	p.mirror(ctx, quote)
}

// mirror writes the quote to Redis best-effort with a TTL of three poll
// intervals so a dead poller ages out instead of pinning a stale value.
func (p *Poller) mirror(ctx context.Context, quote *types.ExchangeRate) {
	if p.rdb == nil {
		return
	}

	data, err := json.Marshal(quote)
	if err != nil {
		p.logger.WithError(err).Error("marshal quote for redis mirror")
		return
	}

	key := fmt.Sprintf(redisKeyFmt, p.pair)
	if err := p.rdb.Set(ctx, key, data, 3*p.interval).Err(); err != nil {
		p.logger.WithError(err).WithField("key", key).Warn("redis rate mirror failed")
	}
}
