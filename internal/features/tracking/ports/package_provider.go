package ports

import (
	"context"

	"tracking-proxy/internal/features/tracking/domain"
)

// PackageProvider defines the interface for the upstream tracking provider.
// Implementations never return errors: every failure is folded into the result.
type PackageProvider interface {
	// FetchOne looks up a single tracking code.
	FetchOne(ctx context.Context, code string) domain.ProviderResult
}
