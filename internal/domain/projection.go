package domain

import "fmt"

// Project applies executed transfers to a snapshot and returns the resulting
// snapshot, for chaining runs (e.g. allocating from photo stock after the
// stock pool was drained). The input snapshot is never touched.
//
// A transfer that would drive a quantity below zero indicates the transfer
// list was computed against a different snapshot; projection tolerates it by
// skipping the transfer and recording a warning rather than failing the run.
func Project(s *Snapshot, transfers []Transfer) (*Snapshot, []Warning) {
	out := s.Clone()
	var warnings []Warning

	for _, t := range transfers {
		row := out.Row(t.RowIndex)
		if row == nil {
			warnings = append(warnings, Warning{
				Code:     WarnNegativeProjection,
				RowIndex: t.RowIndex,
				Message:  fmt.Sprintf("transfer references row %d which is not in the snapshot", t.RowIndex),
			})
			continue
		}

		if w := debit(row, t); w != nil {
			warnings = append(warnings, *w)
			continue
		}
		credit(row, t)
	}

	return out, warnings
}

// debit removes the transfer quantity from the sender side, refusing to go
// negative.
func debit(row *ProductRow, t Transfer) *Warning {
	held := 0
	switch t.Sender {
	case WarehouseStock:
		held = row.Stock
	case WarehousePhoto:
		held = row.PhotoStock
	default:
		held = row.Quantity(t.Sender)
	}

	if held < t.Quantity {
		return &Warning{
			Code:     WarnNegativeProjection,
			RowIndex: t.RowIndex,
			Message: fmt.Sprintf("row %d: sender %q holds %d, cannot move %d",
				t.RowIndex, t.Sender, held, t.Quantity),
		}
	}

	switch t.Sender {
	case WarehouseStock:
		row.Stock -= t.Quantity
	case WarehousePhoto:
		row.PhotoStock -= t.Quantity
	default:
		row.Quantities[t.Sender] = held - t.Quantity
	}
	return nil
}

// credit adds the transfer quantity to the receiver side. Surplus routed to
// the warehouse returns to the sellable stock pool.
func credit(row *ProductRow, t Transfer) {
	switch t.Receiver {
	case WarehouseStock:
		row.Stock += t.Quantity
	case WarehousePhoto:
		row.PhotoStock += t.Quantity
	default:
		if row.Quantities == nil {
			row.Quantities = make(map[string]int)
		}
		row.Quantities[t.Receiver] += t.Quantity
	}
}
