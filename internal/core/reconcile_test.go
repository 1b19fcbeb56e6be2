package core

import "testing"

func baselineFixture() []Entry {
	return []Entry{
		{ID: 1, Date: NewDate(2025, 8, 4), Description: "standup", Hours: 0.5},
		{ID: 2, Date: NewDate(2025, 8, 5), Description: "review", Hours: 2},
	}
}

func TestReconcileUpdateInsertDelete(t *testing.T) {
	baseline := baselineFixture()
	candidate := []Entry{
		{ID: 1, Date: NewDate(2025, 8, 4), Description: "standup", Hours: 1.5}, // changed hours
		{Date: NewDate(2025, 8, 6), Description: "new row", Hours: 3},          // no id
		// id 2 missing -> deleted
	}

	diff := Reconcile(baseline, candidate)

	if len(diff.Updates) != 1 || diff.Updates[0].ID != 1 || diff.Updates[0].Hours != 1.5 {
		t.Fatalf("unexpected updates: %+v", diff.Updates)
	}
	if len(diff.Inserts) != 1 || diff.Inserts[0].Description != "new row" {
		t.Fatalf("unexpected inserts: %+v", diff.Inserts)
	}
	if len(diff.Deletes) != 1 || diff.Deletes[0] != 2 {
		t.Fatalf("unexpected deletes: %+v", diff.Deletes)
	}
}

func TestReconcileIdentical(t *testing.T) {
	baseline := baselineFixture()
	candidate := baselineFixture()

	diff := Reconcile(baseline, candidate)
	if !diff.Empty() {
		t.Fatalf("identical tables must yield an empty diff, got %+v", diff)
	}
}

func TestReconcileDuplicateFieldsStillInserted(t *testing.T) {
	baseline := baselineFixture()
	// Same field values as id 1, but no id: always an insertion.
	candidate := append(baselineFixture(),
		Entry{Date: NewDate(2025, 8, 4), Description: "standup", Hours: 0.5})

	diff := Reconcile(baseline, candidate)
	if len(diff.Inserts) != 1 {
		t.Fatalf("expected one insert, got %+v", diff.Inserts)
	}
	if len(diff.Updates) != 0 || len(diff.Deletes) != 0 {
		t.Fatalf("expected no other operations, got %+v", diff)
	}
}

func TestReconcileAllDeleted(t *testing.T) {
	diff := Reconcile(baselineFixture(), nil)
	if len(diff.Deletes) != 2 {
		t.Fatalf("expected both rows deleted, got %+v", diff.Deletes)
	}
	if len(diff.Updates) != 0 || len(diff.Inserts) != 0 {
		t.Fatalf("expected no updates/inserts, got %+v", diff)
	}
}

func TestReconcileUnknownIDIgnored(t *testing.T) {
	baseline := baselineFixture()
	candidate := append(baselineFixture(),
		Entry{ID: 42, Date: NewDate(2025, 8, 7), Description: "ghost", Hours: 1})

	diff := Reconcile(baseline, candidate)
	if !diff.Empty() {
		t.Fatalf("rows with ids unknown to baseline must be ignored, got %+v", diff)
	}
}
