package domain

// diversityMinimum is the number of distinct variants that must be shipped
// together when a store holds at most one variant of a product. Shipping
// fewer would leave the store with too thin a size range to sell from, so
// the rule is all or nothing.
const diversityMinimum = 3

// Allocate plans transfers from the selected warehouse pool to stores that
// currently hold zero units of a variant, honoring the priority order, the
// exclusion list and the per-product diversity rule. It is a pure function of
// its inputs: the snapshot is never mutated and two calls on the same inputs
// yield the same transfer list in the same order.
//
// Rows sharing a nomenclature form a group and share nothing with other
// groups; within a group the warehouse pool is consumed store by store in
// priority order, so earlier-ranked stores see availability that later ones
// do not. Returned notes mark rows the diversity rule suppressed at every
// store; a row that shipped somewhere carries no note.
func Allocate(s *Snapshot, cfg DistributionConfig, pool Pool) ([]Transfer, []RowNote) {
	active := cfg.ActiveStores()
	sink := pool.Sink()

	var transfers []Transfer
	noted := make(map[int]bool)
	var notes []RowNote

	for _, group := range s.Groups() {
		// Remaining pool per row, shared across every store in this group.
		remaining := make(map[int]int, len(group.Rows))
		for _, row := range group.Rows {
			remaining[row.Index] = row.PoolQuantity(pool)
		}

		for _, store := range active {
			if group.DistinctVariants(store) >= 2 {
				// Normal mode: top up every missing variant that still has
				// pool availability.
				for _, row := range group.Rows {
					if row.Quantity(store) == 0 && remaining[row.Index] > 0 {
						transfers = append(transfers, Transfer{
							RowIndex: row.Index,
							Sender:   sink,
							Receiver: store,
							Quantity: 1,
						})
						remaining[row.Index]--
					}
				}
				continue
			}

			// Diversity mode: the store holds at most one variant of this
			// product. Ship the first diversityMinimum eligible variants in
			// row order, or nothing at all.
			var eligible []*ProductRow
			for _, row := range group.Rows {
				if row.Quantity(store) == 0 && remaining[row.Index] > 0 {
					eligible = append(eligible, row)
				}
			}
			if len(eligible) >= diversityMinimum {
				for _, row := range eligible[:diversityMinimum] {
					transfers = append(transfers, Transfer{
						RowIndex: row.Index,
						Sender:   sink,
						Receiver: store,
						Quantity: 1,
					})
					remaining[row.Index]--
				}
				continue
			}
			for _, row := range eligible {
				if !noted[row.Index] {
					noted[row.Index] = true
					notes = append(notes, RowNote{RowIndex: row.Index, Reason: NoteInsufficientVariants})
				}
			}
		}
	}

	return transfers, pruneShippedNotes(transfers, notes)
}

// pruneShippedNotes drops notes for rows that received a transfer after all:
// the note explains an empty row, not a partially served one.
func pruneShippedNotes(transfers []Transfer, notes []RowNote) []RowNote {
	if len(notes) == 0 {
		return notes
	}
	shipped := make(map[int]bool, len(transfers))
	for _, t := range transfers {
		shipped[t.RowIndex] = true
	}
	var kept []RowNote
	for _, n := range notes {
		if !shipped[n.RowIndex] {
			kept = append(kept, n)
		}
	}
	return kept
}
