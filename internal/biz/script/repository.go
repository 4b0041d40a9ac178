package script

import (
	"context"
	"time"

	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"github.com/samber/mo"
)

type Repo interface {
	commonrepo.Transaction
	Create(ctx context.Context, script *Script) error
	GetByID(ctx context.Context, id string) (*Script, error)
	Save(ctx context.Context, script *Script) error
	Update(ctx context.Context, id string, patch *ScriptPatch) error
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]*Script, int64, error)

	// UpdateIf applies patch only while the stored row matches guard and
	// reports whether it did.
	UpdateIf(ctx context.Context, id string, guard Guard, patch *ScriptPatch) (bool, error)

	// ListStale returns scripts left in an active status since before the cutoff.
	ListStale(ctx context.Context, before time.Time) ([]*Script, error)
}

// Guard restricts a conditional update to rows still in one of From and,
// when set, last updated before UpdatedBefore.
type Guard struct {
	From          []Status
	UpdatedBefore mo.Option[time.Time]
}

type ListFilter struct {
	Status   mo.Option[Status]
	Provider mo.Option[string]
}
