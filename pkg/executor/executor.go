package executor

import (
	"github.com/dotsync/dotsync/pkg/filesystem"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/dotsync/dotsync/pkg/mapping"
	"github.com/dotsync/dotsync/pkg/paths"
	"github.com/dotsync/dotsync/pkg/reconcile"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	// Sorted processes pairs ordered by source key
	Sorted bool
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
	// Filesystem operations interface for testing
	FS filesystem.FS
}

// Executor reconciles every pair of a mapping in turn.
type Executor struct {
	sorted     bool
	logger     zerolog.Logger
	reconciler *reconcile.Reconciler
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Executor{
		sorted:     opts.Sorted,
		logger:     logger,
		reconciler: reconcile.New(fs),
	}
}

// Run expands m against root and reconciles each pair, stopping at the
// first failure. The outcomes of pairs reconciled before a failure are
// returned alongside the error.
func (e *Executor) Run(m *mapping.Mapping, root string, x *paths.Expander) ([]reconcile.Outcome, error) {
	done := logging.LogOperationStart(e.logger, "reconcile mapping")
	defer done()

	var pairs []mapping.Pair
	if e.sorted {
		pairs = m.ExpandSorted(root, x)
	} else {
		pairs = m.Expand(root, x)
	}

	outcomes := make([]reconcile.Outcome, 0, len(pairs))
	for i, pair := range pairs {
		e.logger.Debug().
			Int("index", i).
			Str("source", pair.Source).
			Str("destination", pair.Destination).
			Msg("Reconciling pair")

		outcome, err := e.reconciler.Reconcile(pair.Source, pair.Destination)
		if err != nil {
			e.logger.Error().
				Err(err).
				Str("source", pair.Source).
				Str("destination", pair.Destination).
				Int("completed", len(outcomes)).
				Int("remaining", len(pairs)-i-1).
				Msg("Reconciliation failed, stopping")
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	e.logger.Info().Int("linked", len(outcomes)).Msg("All pairs reconciled")
	return outcomes, nil
}
