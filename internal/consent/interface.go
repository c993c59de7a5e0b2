package consent

import "context"

//go:generate mockery --name Repository
type Repository interface {
	// Append stores a new record and returns it as persisted.
	Append(ctx context.Context, input AppendInput) (Record, error)
	// History returns every record for phone, newest first.
	History(ctx context.Context, phone string) ([]Record, error)
	Close() error
}
