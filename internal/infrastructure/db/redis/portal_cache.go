package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const portalTokenTTL = time.Hour

// PortalTokenCache is a lookaside cache from portal access token to project
// id, backed by Redis. Key format: portal:token:<access_token>
//
// The enabled flag is deliberately not cached; callers must re-check it on
// the store row so disabling a portal takes effect immediately.
type PortalTokenCache struct {
	client *redis.Client
}

// NewPortalTokenCache creates a PortalTokenCache wrapping the given client.
func NewPortalTokenCache(client *redis.Client) *PortalTokenCache {
	return &PortalTokenCache{client: client}
}

// GetProjectID resolves a token to its cached project id. The second return
// is false on a cache miss.
func (c *PortalTokenCache) GetProjectID(ctx context.Context, token string) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("portal cache get: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("portal cache get: corrupt entry: %w", err)
	}
	return id, true, nil
}

// Set records the token to project mapping (expires after portalTokenTTL).
func (c *PortalTokenCache) Set(ctx context.Context, token string, projectID uuid.UUID) error {
	return c.client.Set(ctx, c.key(token), projectID.String(), portalTokenTTL).Err()
}

// Invalidate drops the mapping for a rotated, disabled, or deleted token.
func (c *PortalTokenCache) Invalidate(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *PortalTokenCache) key(token string) string {
	return "portal:token:" + token
}
