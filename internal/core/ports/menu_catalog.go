package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
)

// MenuCatalog reads catalog entries. Menu management is out of scope; the
// catalog is only ever read.
type MenuCatalog interface {
	// GetByIDs returns the entries found among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*menu.Item, error)
}
