package lookup

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/MakerMaker19/countryinfo/pkg/country"
)

// Searcher is the upstream country source. *restcountries.Client
// satisfies it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, query string) ([]country.Record, error)
}

// Observer is notified after every upstream call. The web server counts
// lookups through it.
type Observer interface {
	ObserveLookup(outcome string, d time.Duration)
}

// Outcome labels passed to an Observer.
const (
	OutcomeLoaded = "loaded"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Loader runs Requests against a Searcher. Concurrent loads of the same
// query share one upstream call, so there is never more than one request
// outstanding per distinct query value. Loader is safe for concurrent use.
type Loader struct {
	searcher Searcher
	logger   *zap.Logger
	observer Observer
	group    singleflight.Group
}

type LoaderOption func(*Loader)

func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

func WithObserver(o Observer) LoaderOption {
	return func(ld *Loader) {
		ld.observer = o
	}
}

func NewLoader(s Searcher, opts ...LoaderOption) *Loader {
	ld := &Loader{
		searcher: s,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load fetches the records for req. It never returns an error directly;
// failures are carried in Result.Err. Cancelling ctx makes this call
// return ctx.Err() without affecting other callers waiting on the same
// query.
func (l *Loader) Load(ctx context.Context, req Request) Result {
	log := l.logger.With(
		zap.String("request_id", req.ID),
		zap.String("query", req.Query),
		zap.Uint64("gen", req.Gen),
	)
	log.Debug("lookup started")

	start := time.Now()
	// The shared call must outlive any one caller: a caller that goes away
	// only stops waiting. The client timeout still bounds the call.
	shareCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(req.Query, func() (interface{}, error) {
		records, err := l.searcher.Search(shareCtx, req.Query)
		if l.observer != nil {
			l.observer.ObserveLookup(outcomeOf(Result{Records: records, Err: err}), time.Since(start))
		}
		return records, err
	})

	var (
		v      interface{}
		err    error
		shared bool
	)
	select {
	case r := <-ch:
		v, err, shared = r.Val, r.Err, r.Shared
	case <-ctx.Done():
		err = ctx.Err()
	}
	elapsed := time.Since(start)

	res := Result{Request: req, Err: err}
	if err == nil {
		res.Records, _ = v.([]country.Record)
	}

	if err != nil {
		log.Warn("lookup failed", zap.Error(err), zap.Duration("duration", elapsed), zap.Bool("shared", shared))
	} else {
		log.Info("lookup finished",
			zap.String("outcome", outcomeOf(res)),
			zap.Int("records", len(res.Records)),
			zap.Duration("duration", elapsed),
			zap.Bool("shared", shared),
		)
	}
	return res
}

func outcomeOf(res Result) string {
	switch {
	case res.Err != nil:
		return OutcomeFailed
	case len(res.Records) == 0:
		return OutcomeEmpty
	default:
		return OutcomeLoaded
	}
}
