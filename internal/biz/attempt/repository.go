package attempt

import "context"

type Repo interface {
	Create(ctx context.Context, attempt *Attempt) error
	ListByScript(ctx context.Context, scriptID string) ([]*Attempt, error)
	CountByScript(ctx context.Context, scriptID string) (int64, error)
}
