package middleware

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
)

type contextKey string

const (
	ctxCustomerID contextKey = "customer_id"
	ctxTier       contextKey = "customer_tier"
)

func CustomerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCustomerID).(string); ok {
		return v
	}
	return ""
}

// CustomerUUIDFromContext returns the authenticated customer id, or an
// unauthorized error when the request carries none.
func CustomerUUIDFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := CustomerIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid customer id")
	}
	return id, nil
}

func TierFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTier).(string); ok {
		return v
	}
	return ""
}

// WithCustomerID injects the customer identifier into the context.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCustomerID, customerID)
}

// WithTier injects the customer tier into the context.
func WithTier(ctx context.Context, tier string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTier, tier)
}
