package league

import "context"

// Repository exposes league read operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (League, bool, error)
	List(ctx context.Context) ([]League, error)
}
