package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

func loadSubmissionStep(rows [][]driver.Value) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile(`SELECT .* FROM .?submissions.? WHERE submission_id = \? AND deleted_at IS NULL`),
		anyArgs: true,
		columns: []string{"submission_id", "author_id", "status", "version", "assigned_to"},
		rows:    rows,
	}
}

func TestWorkflowExecuteHappyPath(t *testing.T) {
	steps := []*queryStep{
		// load
		loadSubmissionStep([][]driver.Value{{int64(10), int64(7), StatusDraft, int64(3), nil}}),
		// conditional update guarded by the loaded version
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .?submissions.? SET .* WHERE submission_id = \? AND version = \? AND deleted_at IS NULL`),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 1},
		},
		// history entry
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .?submission_status_history.?`),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		// reload with preloads; nil assignee/reviewer FKs skip those queries
		loadSubmissionStep([][]driver.Value{{int64(10), int64(7), StatusSubmitted, int64(4), nil}}),
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .?users.?`),
			anyArgs: true,
			columns: []string{"user_id", "user_fname"},
			rows:    [][]driver.Value{{int64(7), "Mika"}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .* FROM .?submission_status_history.? .*ORDER BY history_id ASC`),
			anyArgs: true,
			columns: []string{"history_id", "submission_id", "action", "status", "actor_id", "actor_role"},
			rows:    [][]driver.Value{{int64(1), int64(10), ActionSubmitted, StatusSubmitted, int64(7), RoleAuthor}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	sub, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 10,
		TargetStatus: "submitted",
		ActorID:      7,
		ActorRole:    RoleAuthor,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if sub.Status != StatusSubmitted {
		t.Fatalf("reloaded status = %s, want %s", sub.Status, StatusSubmitted)
	}
	if sub.Author == nil || sub.Author.UserID != 7 {
		t.Fatalf("author not preloaded: %+v", sub.Author)
	}
	if len(sub.History) != 1 || sub.History[0].Action != ActionSubmitted {
		t.Fatalf("history not preloaded: %+v", sub.History)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWorkflowExecuteVersionConflict(t *testing.T) {
	steps := []*queryStep{
		loadSubmissionStep([][]driver.Value{{int64(10), int64(7), StatusDraft, int64(3), nil}}),
		// a competing writer bumped the version between load and write
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .?submissions.? SET .* WHERE submission_id = \? AND version = \?`),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	_, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 10,
		TargetStatus: StatusSubmitted,
		ActorID:      7,
		ActorRole:    RoleAuthor,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// no history insert after the failed compare-and-swap
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWorkflowExecuteDeniedWritesNothing(t *testing.T) {
	steps := []*queryStep{
		loadSubmissionStep([][]driver.Value{{int64(10), int64(7), StatusApproved, int64(3), nil}}),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	_, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 10,
		TargetStatus: StatusPublished,
		ActorID:      7,
		ActorRole:    RoleAuthor,
	})

	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if terr.Role != RoleAuthor || terr.From != StatusApproved || terr.To != StatusPublished {
		t.Fatalf("unexpected transition error: %+v", terr)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWorkflowExecuteExclusiveAssignmentGuard(t *testing.T) {
	steps := []*queryStep{
		loadSubmissionStep([][]driver.Value{{int64(10), int64(7), StatusSubmitted, int64(3), int64(21)}}),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	_, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 10,
		TargetStatus: StatusInProgress,
		ActorID:      33,
		ActorRole:    RoleCurator,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for already-assigned submission, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWorkflowExecuteNotFound(t *testing.T) {
	steps := []*queryStep{
		loadSubmissionStep(nil),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewWorkflowService(db)
	_, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 404,
		TargetStatus: StatusSubmitted,
		ActorID:      7,
		ActorRole:    RoleAuthor,
	})
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWorkflowExecuteRejectsUnknownTarget(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewWorkflowService(db)
	_, err := svc.Execute(context.Background(), &TransitionRequest{
		SubmissionID: 10,
		TargetStatus: "banana",
		ActorID:      7,
		ActorRole:    RoleAuthor,
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
