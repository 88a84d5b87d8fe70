package services

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"draft", StatusDraft, true},
		{"  Submitted ", StatusSubmitted, true},
		{"IN_PROGRESS", StatusInProgress, true},
		{"pending_review", StatusSubmitted, true},
		{"needs_revision", StatusNeedsChanges, true},
		{"accepted", StatusApproved, true},
		{"under_review", StatusInProgress, true},
		{"published", StatusPublished, true},
		{"banana", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeStatus(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTransitionAction(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    string
	}{
		{StatusDraft, StatusSubmitted, ActionSubmitted},
		{StatusNeedsChanges, StatusSubmitted, ActionResubmitted},
		{StatusInProgress, StatusSubmitted, ActionAssignmentReleased},
		{StatusSubmitted, StatusInProgress, ActionMovedToInProgress},
		{StatusInProgress, StatusApproved, ActionApproved},
		{StatusInProgress, StatusRejected, ActionRejected},
		{StatusInProgress, StatusNeedsChanges, ActionNeedsChanges},
		{StatusInProgress, StatusShortlisted, ActionShortlisted},
		{StatusApproved, StatusPublished, ActionPublished},
		{StatusPublished, StatusArchived, ActionArchived},
		{StatusNeedsChanges, StatusDraft, ActionReturnedToDraft},
	}

	for _, tc := range cases {
		if got := TransitionAction(tc.current, tc.target); got != tc.want {
			t.Fatalf("TransitionAction(%s, %s) = %s, want %s", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestIsReviewDecisionAction(t *testing.T) {
	decisions := []string{ActionApproved, ActionRejected, ActionNeedsChanges, ActionShortlisted}
	for _, action := range decisions {
		if !IsReviewDecisionAction(action) {
			t.Fatalf("%s should be a review decision", action)
		}
	}

	others := []string{ActionSubmitted, ActionResubmitted, ActionMovedToInProgress, ActionAssignmentReleased, ActionPublished, ActionArchived, ActionReturnedToDraft}
	for _, action := range others {
		if IsReviewDecisionAction(action) {
			t.Fatalf("%s should not be a review decision", action)
		}
	}
}
