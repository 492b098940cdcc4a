package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Loader replaces the repository dataset, either from the external data
// source or from the mock generator. A failed load never disturbs the
// dataset already held.
type Loader struct {
	repo         interfaces.Repository
	source       interfaces.DeviceSource
	windowMonths int
	now          func() time.Time
	inFlight     atomic.Bool
}

// LoaderOption configures the Loader
type LoaderOption func(*Loader)

// WithLoaderClock overrides the time source (for tests)
func WithLoaderClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.now = now
	}
}

// NewLoader creates a new Loader. The source may be nil when the service
// runs on mock data only.
func NewLoader(repo interfaces.Repository, src interfaces.DeviceSource, windowMonths int, opts ...LoaderOption) *Loader {
	if windowMonths <= 0 {
		windowMonths = 6
	}
	l := &Loader{
		repo:         repo,
		source:       src,
		windowMonths: windowMonths,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches records from the data source and replaces the dataset.
// There is at most one in-flight load; a second call while one runs is
// rejected. Fetch and validation failures propagate to the caller, which
// logs them and keeps serving the prior dataset.
func (l *Loader) Load(ctx context.Context) error {
	if l.source == nil {
		return goerr.New("no data source is configured")
	}
	if !l.inFlight.CompareAndSwap(false, true) {
		return goerr.Wrap(model.ErrLoadInProgress, "load rejected")
	}
	defer l.inFlight.Store(false)

	now := l.now()
	to := model.DateOf(now)
	from := to.AddMonths(-l.windowMonths)

	records, err := l.source.FetchDevices(ctx, interfaces.DeviceQuery{
		From: from,
		To:   to,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to fetch devices from source")
	}

	loadID := types.NewLoadID()
	if err := l.repo.ReplaceDevices(ctx, loadID, records); err != nil {
		return goerr.Wrap(err, "failed to replace dataset",
			goerr.V("loadID", loadID))
	}

	ctxlog.From(ctx).Info("Dataset loaded from source",
		"loadID", loadID,
		"count", len(records),
		"from", from.String(),
		"to", to.String(),
	)
	return nil
}

// Seed installs a generated dataset. Used at startup so the dashboard has
// data before (or without) a successful source load.
func (l *Loader) Seed(ctx context.Context, records []*model.DeviceRecord) error {
	loadID := types.NewLoadID()
	if err := l.repo.ReplaceDevices(ctx, loadID, records); err != nil {
		return goerr.Wrap(err, "failed to install seed dataset",
			goerr.V("loadID", loadID))
	}

	ctxlog.From(ctx).Info("Seed dataset installed",
		"loadID", loadID,
		"count", len(records),
	)
	return nil
}
