package app

import (
	"context"

	"github.com/vuminhle/fossildeck/domain"
)

// CatalogService searches the fossil catalog and loads specimen details.
type CatalogService interface {
	// Search runs an advanced catalog search. Blank filters are omitted.
	Search(ctx context.Context, q domain.SearchQuery) (domain.SearchPage, error)

	// Detail returns the full record for one specimen, including the
	// favorite flag when the caller is authenticated.
	Detail(ctx context.Context, fossilID string) (domain.FossilDetail, error)
}
