package http

import (
	"context"

	"pvpulse/internal/services"
	"pvpulse/pkg/contracts/domain"
)

// DataServiceInterface is what the data handler needs from the service
// layer; narrowed for testability.
type DataServiceInterface interface {
	Products(ctx context.Context) []domain.CatalogProduct
	Records(ctx context.Context, rangeToken string) (domain.Dataset, error)
	Series(ctx context.Context, view services.ViewState) (domain.Series, error)
	ProductStats(ctx context.Context, view services.ViewState) (domain.PriceStats, error)
	AllStats(ctx context.Context, rangeToken string) ([]domain.PriceStats, error)
	LastUpdate(ctx context.Context) (domain.CalendarDay, error)
	Reload(ctx context.Context) (int, error)
}
