package domain

import "sort"

// Rebalance plans transfers that move surplus above the balance threshold
// from over-stocked stores to empty ones, using the static priority order for
// destinations.
func Rebalance(s *Snapshot, cfg DistributionConfig) []Transfer {
	return RebalanceRanked(s, cfg, NewStaticRanking(cfg))
}

// RebalanceRanked is Rebalance with a pluggable destination ordering, e.g. a
// sales-derived ranking. Like Allocate it is pure and deterministic; rows are
// processed independently of each other.
//
// Per row: over-stocked stores are drained in descending quantity order (ties
// by priority rank), each sending one unit to its balance partner when the
// partner is empty, then one unit to each empty store in ranking order, and
// whatever surplus is left to the warehouse sink in a single transfer.
// Eligibility is judged on the row's original quantities, except that a store
// already chosen as a destination earlier in the row is off the table for
// later senders.
func RebalanceRanked(s *Snapshot, cfg DistributionConfig, ranking Ranking) []Transfer {
	var transfers []Transfer

	for i := range s.Rows {
		row := &s.Rows[i]
		transfers = append(transfers, rebalanceRow(row, cfg, ranking)...)
	}

	return transfers
}

func rebalanceRow(row *ProductRow, cfg DistributionConfig, ranking Ranking) []Transfer {
	order := ranking.Order(row.Nomenclature)

	// Over-stocked senders: non-excluded stores above the threshold, drained
	// highest quantity first, ties broken by priority rank.
	var senders []string
	for _, store := range cfg.ActiveStores() {
		if row.Quantity(store) > cfg.BalanceThreshold {
			senders = append(senders, store)
		}
	}
	if len(senders) == 0 {
		return nil
	}
	sort.SliceStable(senders, func(a, b int) bool {
		qa, qb := row.Quantity(senders[a]), row.Quantity(senders[b])
		if qa != qb {
			return qa > qb
		}
		return cfg.Rank(senders[a]) < cfg.Rank(senders[b])
	})

	var transfers []Transfer
	targeted := make(map[string]bool)
	drained := make(map[string]bool)

	for _, sender := range senders {
		excess := row.Quantity(sender) - cfg.BalanceThreshold
		drained[sender] = true

		// Partner first: one unit, and only when the partner sits at zero.
		if partner, ok := cfg.PartnerStore(sender); ok {
			if !cfg.IsExcluded(partner) && partner != sender &&
				row.Quantity(partner) == 0 && !targeted[partner] && !drained[partner] {
				transfers = append(transfers, Transfer{
					RowIndex: row.Index,
					Sender:   sender,
					Receiver: partner,
					Quantity: 1,
				})
				targeted[partner] = true
				excess--
			}
		}

		// Fill empty stores in ranking order, one unit each.
		for _, store := range order {
			if excess == 0 {
				break
			}
			if store == sender || targeted[store] || drained[store] {
				continue
			}
			if row.Quantity(store) != 0 {
				continue
			}
			transfers = append(transfers, Transfer{
				RowIndex: row.Index,
				Sender:   sender,
				Receiver: store,
				Quantity: 1,
			})
			targeted[store] = true
			excess--
		}

		// Whatever could not be placed goes back to the warehouse.
		if excess > 0 {
			transfers = append(transfers, Transfer{
				RowIndex: row.Index,
				Sender:   sender,
				Receiver: WarehouseStock,
				Quantity: excess,
			})
		}
	}

	return transfers
}
