// Package workflow provides a small finite-state-machine executor for
// analysis pipelines. A graph is a set of stages with conditional
// edges; each stage takes the analysis record by value and returns the
// updated record, so no stage ever mutates state shared with another.
package workflow

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/logging"
)

// StageID identifies a stage within a graph. Identifiers are typed
// rather than string names so a mistyped edge fails at registration,
// not silently at run time.
type StageID uint8

// Terminate is the sentinel edge target that ends the workflow.
const Terminate StageID = 0

// StageFunc transforms the analysis record. Failures are recorded on
// the record itself; the workflow decides at the edges whether to
// continue degraded or stop.
type StageFunc[R any] func(ctx context.Context, rec R) R

// EdgeFunc picks the next stage after a stage completes, or Terminate.
type EdgeFunc[R any] func(rec R) StageID

type stage[R any] struct {
	name    string
	run     StageFunc[R]
	next    EdgeFunc[R]
	allowed map[StageID]struct{}
}

// Graph is a directed workflow over a record type R.
type Graph[R any] struct {
	name   string
	logger zerolog.Logger
	entry  StageID
	stages map[StageID]stage[R]
}

// New creates an empty graph.
func New[R any](name string, logger zerolog.Logger) *Graph[R] {
	return &Graph[R]{
		name:   name,
		logger: logging.WithWorkflow(logger, name),
		stages: make(map[StageID]stage[R]),
	}
}

// AddStage registers a stage with its conditional edge and the set of
// stages the edge is allowed to select. Terminate is always allowed.
func (g *Graph[R]) AddStage(id StageID, name string, run StageFunc[R], next EdgeFunc[R], allowedNext ...StageID) *Graph[R] {
	allowed := make(map[StageID]struct{}, len(allowedNext)+1)
	allowed[Terminate] = struct{}{}
	for _, n := range allowedNext {
		allowed[n] = struct{}{}
	}
	g.stages[id] = stage[R]{name: name, run: run, next: next, allowed: allowed}
	return g
}

// SetEntry marks the stage execution starts from.
func (g *Graph[R]) SetEntry(id StageID) *Graph[R] {
	g.entry = id
	return g
}

// Validate checks that the entry point exists and every declared edge
// target is a registered stage.
func (g *Graph[R]) Validate() error {
	if _, ok := g.stages[g.entry]; !ok {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "workflow %s: entry stage %d not registered", g.name, g.entry)
	}
	for id, st := range g.stages {
		for target := range st.allowed {
			if target == Terminate {
				continue
			}
			if _, ok := g.stages[target]; !ok {
				return apperrors.Wrapf(apperrors.ErrConfigInvalid,
					"workflow %s: stage %s declares edge to unregistered stage %d", g.name, st.name, target)
			}
		}
		_ = id
	}
	return nil
}

// Run executes the graph over the record until an edge selects
// Terminate. A step budget of twice the stage count guards against
// transition cycles.
func (g *Graph[R]) Run(ctx context.Context, rec R) (R, error) {
	if err := g.Validate(); err != nil {
		return rec, err
	}

	maxSteps := 2*len(g.stages) + 1
	current := g.entry

	for step := 0; step < maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return rec, err
		}

		st, ok := g.stages[current]
		if !ok {
			return rec, apperrors.Wrapf(apperrors.ErrConfigInvalid,
				"workflow %s: transition to unregistered stage %d", g.name, current)
		}

		g.logger.Debug().Str("stage", st.name).Msg("Running stage")
		rec = st.run(ctx, rec)

		next := st.next(rec)
		if next == Terminate {
			g.logger.Debug().Str("from", st.name).Msg("Workflow terminated")
			return rec, nil
		}
		if _, allowed := st.allowed[next]; !allowed {
			return rec, apperrors.Wrapf(apperrors.ErrConfigInvalid,
				"workflow %s: stage %s selected undeclared edge to %d", g.name, st.name, next)
		}

		nextStage := g.stages[next]
		logging.LogStageTransition(g.logger, g.name, st.name, nextStage.name)
		current = next
	}

	return rec, apperrors.Wrapf(apperrors.ErrConfigInvalid,
		"workflow %s: step budget exhausted, likely a cycle", g.name)
}
