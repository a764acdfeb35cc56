// Package identity verifies bearer tokens and resolves who is calling.
package identity

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified subject of a token. Session tokens carry UserID;
// identity provider tokens carry UID and whatever profile claims are present.
type Identity struct {
	UserID string
	UID    string
	Email  string
	Name   string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Chain tries each verifier in order and returns the first success.
type Chain []Verifier

func (c Chain) Verify(ctx context.Context, token string) (*Identity, error) {
	for _, v := range c {
		if v == nil {
			continue
		}
		id, err := v.Verify(ctx, token)
		if err == nil {
			return id, nil
		}
	}
	return nil, ErrInvalidToken
}
