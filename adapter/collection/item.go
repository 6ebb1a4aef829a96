package collection

import (
	"context"

	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// Item is a document created by [Collection.New].
type Item[T any] struct {
	domain.Document[T]
	col *Collection[T]
}

// Save writes the item, replacing any document with the same id.
func (i *Item[T]) Save(ctx context.Context) error {
	return i.col.write(ctx, i.ID, i.Document)
}
