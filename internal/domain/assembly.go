package domain

// AssemblePreviews groups transfers by their originating row into per-row
// previews, in snapshot row order. Every row is represented even when it
// moves nothing, carrying the diversity annotation when that was the reason,
// so the rule's effect can be audited row by row.
func AssemblePreviews(s *Snapshot, transfers []Transfer, notes []RowNote) []TransferPreview {
	byRow := make(map[int][]Transfer)
	for _, t := range transfers {
		byRow[t.RowIndex] = append(byRow[t.RowIndex], t)
	}
	noteByRow := make(map[int]NoteReason, len(notes))
	for _, n := range notes {
		noteByRow[n.RowIndex] = n.Reason
	}

	previews := make([]TransferPreview, 0, len(s.Rows))
	for i := range s.Rows {
		row := &s.Rows[i]
		previews = append(previews, TransferPreview{
			RowIndex:  row.Index,
			Product:   row.Nomenclature,
			Variant:   row.Variant,
			Transfers: byRow[row.Index],
			Note:      noteByRow[row.Index],
		})
	}
	return previews
}

// AssembleResults regroups transfers into one table per (sender, receiver)
// pair, in first-appearance order, with one line per contributing transfer.
// Store identifiers are shortened to their code prefix; warehouse sinks keep
// their names. Transfers whose sender and receiver collapse to the same code
// are dropped.
func AssembleResults(s *Snapshot, transfers []Transfer) []TransferResult {
	type pairKey struct{ sender, receiver string }

	order := make([]pairKey, 0)
	byPair := make(map[pairKey][]ResultLine)

	for _, t := range transfers {
		row := s.Row(t.RowIndex)
		if row == nil {
			continue
		}
		key := pairKey{sender: StoreCode(t.Sender), receiver: StoreCode(t.Receiver)}
		if key.sender == key.receiver {
			continue
		}
		if _, ok := byPair[key]; !ok {
			order = append(order, key)
		}
		byPair[key] = append(byPair[key], ResultLine{
			Product:  row.Nomenclature,
			Variant:  row.Variant,
			Quantity: t.Quantity,
		})
	}

	results := make([]TransferResult, 0, len(order))
	for _, key := range order {
		results = append(results, TransferResult{
			Sender:   key.sender,
			Receiver: key.receiver,
			Lines:    byPair[key],
		})
	}
	return results
}
