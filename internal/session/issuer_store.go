// Package session stores short-lived, checkout-scoped selections.
//
// The only value kept here is the issuing bank a shopper picked for a
// bank-redirect method. The confirm-order command prefers an explicitly
// passed issuer; this store bridges hosts that select the bank on an
// earlier page and cannot thread it through.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type IssuerStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIssuerStore(client *redis.Client, ttl time.Duration) *IssuerStore {
	return &IssuerStore{client: client, ttl: ttl}
}

func key(sessionID string, methodID uint) string {
	return fmt.Sprintf("issuer:%s:%d", sessionID, methodID)
}

// Set remembers the selected issuer for the session and payment method
func (s *IssuerStore) Set(ctx context.Context, sessionID string, methodID uint, issuer string) error {
	if s.client == nil {
		return errors.New("issuer store unavailable")
	}
	return s.client.Set(ctx, key(sessionID, methodID), issuer, s.ttl).Err()
}

// Get returns the selected issuer, or empty when none was stored
func (s *IssuerStore) Get(ctx context.Context, sessionID string, methodID uint) (string, error) {
	if s.client == nil {
		return "", nil
	}
	issuer, err := s.client.Get(ctx, key(sessionID, methodID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return issuer, nil
}
