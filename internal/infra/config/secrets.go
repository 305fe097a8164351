// internal/infra/config/secrets.go
package config

import (
	"context"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ResolveSecrets fills PostgresDSN and StockAPIKey from Secret Manager
// when the environment supplies a secret resource name instead of a
// literal value, e.g.
//
//	POSTGRES_DSN_SECRET=projects/p/secrets/greencart-dsn/versions/latest
//
// Best-effort: a lookup failure logs a warning and keeps whatever literal
// value was set; the service still boots (with the stock gate fail-open
// if the collaborator ends up unconfigured).
func (c *Config) ResolveSecrets(ctx context.Context) {
	if c == nil {
		return
	}
	if strings.TrimSpace(c.PostgresDSNSecret) == "" && strings.TrimSpace(c.StockAPIKeySecret) == "" {
		return
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Printf("[config] WARN: secret manager client init failed: %v (keeping literal values)", err)
		return
	}
	defer func() { _ = sm.Close() }()

	if name := strings.TrimSpace(c.PostgresDSNSecret); name != "" {
		if v, err := accessSecret(ctx, sm, name); err != nil {
			log.Printf("[config] WARN: resolve POSTGRES_DSN_SECRET failed: %v", err)
		} else {
			c.PostgresDSN = v
		}
	}

	if name := strings.TrimSpace(c.StockAPIKeySecret); name != "" {
		if v, err := accessSecret(ctx, sm, name); err != nil {
			log.Printf("[config] WARN: resolve STOCK_API_KEY_SECRET failed: %v", err)
		} else {
			c.StockAPIKey = v
		}
	}
}

func accessSecret(ctx context.Context, sm *secretmanager.Client, name string) (string, error) {
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("empty payload for %s", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
