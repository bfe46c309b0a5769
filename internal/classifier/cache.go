package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-classifier/internal/persistence"
)

// ResultStore is the cache surface the decorator needs. Satisfied by
// *persistence.Redis.
type ResultStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedClassifier memoizes classification results keyed by a hash of the
// ticket content. Cache failures are logged and degrade to a direct model
// call; they never fail the request.
type CachedClassifier struct {
	inner  Classifier
	store  ResultStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps inner with a result cache.
func NewCachedClassifier(inner Classifier, store ResultStore, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	return &CachedClassifier{inner: inner, store: store, ttl: ttl, logger: logger}
}

// Classify serves from cache when possible, otherwise delegates and stores.
func (c *CachedClassifier) Classify(ctx context.Context, content string) (ProcessedTicket, error) {
	key := cacheKey(content)

	if cached, err := c.store.Get(ctx, key); err == nil {
		var result ProcessedTicket
		if jsonErr := json.Unmarshal([]byte(cached), &result); jsonErr == nil && result.Validate() == nil {
			c.logger.Debug("classification cache hit", zap.String("key", key))
			return result, nil
		}
	} else if !persistence.IsCacheMiss(err) {
		c.logger.Warn("classification cache unavailable", zap.Error(err))
	}

	result, err := c.inner.Classify(ctx, content)
	if err != nil {
		return ProcessedTicket{}, err
	}

	if encoded, jsonErr := json.Marshal(result); jsonErr == nil {
		if setErr := c.store.Set(ctx, key, string(encoded), c.ttl); setErr != nil {
			c.logger.Warn("failed to store classification in cache", zap.Error(setErr))
		}
	}
	return result, nil
}

func cacheKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "classification:" + hex.EncodeToString(sum[:])
}
