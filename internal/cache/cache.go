package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/toursearch/internal/models"
)

const keyPrefix = "tours:"

type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) (*models.CachedSearch, bool)
	Set(ctx context.Context, req models.SearchRequest, entry models.CachedSearch) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultRedisConfig. DB 0 and an empty
// password are already the defaults.
func (cfg RedisConfig) withDefaults() RedisConfig {
	def := DefaultRedisConfig()
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	return cfg
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) (*models.CachedSearch, bool) {
	data, err := c.client.Get(ctx, generateKey(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var entry models.CachedSearch
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return &entry, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, entry models.CachedSearch) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, generateKey(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest) (*models.CachedSearch, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, entry models.CachedSearch) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// generateKey hashes the request with the query case-folded, since matching
// ignores case.
func generateKey(req models.SearchRequest) string {
	keyData := struct {
		Query   string
		Filters *models.SearchFilters
	}{
		Query:   strings.ToLower(strings.TrimSpace(req.Query)),
		Filters: req.Filters,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}
