package workflow

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	apperrors "stock-researcher/internal/errors"
)

type traceRecord struct {
	visited []string
	skip    bool
}

const (
	stageFirst StageID = iota + 1
	stageSecond
	stageThird
)

func visit(name string) StageFunc[traceRecord] {
	return func(_ context.Context, rec traceRecord) traceRecord {
		rec.visited = append(rec.visited, name)
		return rec
	}
}

func always(next StageID) EdgeFunc[traceRecord] {
	return func(traceRecord) StageID { return next }
}

func TestRunVisitsStagesInOrder(t *testing.T) {
	g := New[traceRecord]("trace", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), always(stageSecond), stageSecond)
	g.AddStage(stageSecond, "second", visit("second"), always(stageThird), stageThird)
	g.AddStage(stageThird, "third", visit("third"), always(Terminate))
	g.SetEntry(stageFirst)

	rec, err := g.Run(context.Background(), traceRecord{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(rec.visited) != len(want) {
		t.Fatalf("visited = %v, want %v", rec.visited, want)
	}
	for i := range want {
		if rec.visited[i] != want[i] {
			t.Fatalf("visited = %v, want %v", rec.visited, want)
		}
	}
}

func TestRunConditionalEdge(t *testing.T) {
	g := New[traceRecord]("branch", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), func(rec traceRecord) StageID {
		if rec.skip {
			return Terminate
		}
		return stageSecond
	}, stageSecond)
	g.AddStage(stageSecond, "second", visit("second"), always(Terminate))
	g.SetEntry(stageFirst)

	rec, err := g.Run(context.Background(), traceRecord{skip: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.visited) != 1 || rec.visited[0] != "first" {
		t.Errorf("visited = %v, want only first", rec.visited)
	}
}

func TestRunRejectsUndeclaredEdge(t *testing.T) {
	g := New[traceRecord]("undeclared", zerolog.Nop())
	// The edge selects stageSecond but never declares it.
	g.AddStage(stageFirst, "first", visit("first"), always(stageSecond))
	g.AddStage(stageSecond, "second", visit("second"), always(Terminate))
	g.SetEntry(stageFirst)

	_, err := g.Run(context.Background(), traceRecord{})
	if !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestValidateUnregisteredEntry(t *testing.T) {
	g := New[traceRecord]("noentry", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), always(Terminate))
	g.SetEntry(stageSecond)

	if err := g.Validate(); !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestValidateUnregisteredEdgeTarget(t *testing.T) {
	g := New[traceRecord]("dangling", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), always(Terminate), stageThird)
	g.SetEntry(stageFirst)

	if err := g.Validate(); !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestRunStepBudgetStopsCycles(t *testing.T) {
	g := New[traceRecord]("cycle", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), always(stageFirst), stageFirst)
	g.SetEntry(stageFirst)

	rec, err := g.Run(context.Background(), traceRecord{})
	if !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	if len(rec.visited) != 2*1+1 {
		t.Errorf("visited %d stages before the budget tripped, want 3", len(rec.visited))
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New[traceRecord]("cancelled", zerolog.Nop())
	g.AddStage(stageFirst, "first", visit("first"), always(Terminate))
	g.SetEntry(stageFirst)

	rec, err := g.Run(ctx, traceRecord{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(rec.visited) != 0 {
		t.Errorf("visited = %v, want no stages after cancellation", rec.visited)
	}
}
