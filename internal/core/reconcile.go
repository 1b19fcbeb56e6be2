package core

// Diff is the set of storage operations that make the persisted table
// match a user-edited candidate table. The three sets operate on
// disjoint ids; they are applied as all updates, then all inserts,
// then all deletes.
type Diff struct {
	Updates []Entry
	Inserts []Entry
	Deletes []int64
}

// Empty reports whether the diff contains no operations.
func (d Diff) Empty() bool {
	return len(d.Updates) == 0 && len(d.Inserts) == 0 && len(d.Deletes) == 0
}

// Reconcile diffs the user-edited candidate table against the table
// most recently loaded from storage.
//
//   - rows whose id is present in baseline but missing from candidate
//     are deletions
//   - rows with an unassigned id (0) are always insertions; a new row
//     is never deduplicated against an existing one even when its
//     field values match
//   - rows matched to baseline by id are updates iff date, description
//     or hours differ field-by-field
//
// Candidate rows carrying an id unknown to baseline are ignored: they
// can only appear when another writer slipped in between load and
// save, and this system has exactly one trusted user.
func Reconcile(baseline, candidate []Entry) Diff {
	byID := make(map[int64]Entry, len(baseline))
	for _, e := range baseline {
		byID[e.ID] = e
	}

	var diff Diff
	kept := make(map[int64]bool, len(candidate))
	for _, row := range candidate {
		if row.ID == 0 {
			diff.Inserts = append(diff.Inserts, row)
			continue
		}
		kept[row.ID] = true
		old, ok := byID[row.ID]
		if !ok {
			continue
		}
		if !row.Equal(old) {
			diff.Updates = append(diff.Updates, row)
		}
	}

	for _, e := range baseline {
		if !kept[e.ID] {
			diff.Deletes = append(diff.Deletes, e.ID)
		}
	}

	return diff
}
