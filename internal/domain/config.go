package domain

import (
	"fmt"
	"strings"
)

// BalancePair is an unordered pair of store codes eligible to receive each
// other's surplus directly before priority-order distribution kicks in.
type BalancePair struct {
	A string `bson:"a" json:"a" yaml:"a"`
	B string `bson:"b" json:"b" yaml:"b"`
}

// DistributionConfig is an immutable value describing how a run should
// distribute: the full priority order over known stores (list position is the
// rank), the excluded set, the rebalancing threshold and the balance pairs.
// Reordering the priority produces a new config value; configs are never
// mutated in place.
type DistributionConfig struct {
	StorePriority    []string      `bson:"storePriority" json:"storePriority" yaml:"store_priority"`
	ExcludedStores   []string      `bson:"excludedStores" json:"excludedStores" yaml:"excluded_stores"`
	BalanceThreshold int           `bson:"balanceThreshold" json:"balanceThreshold" yaml:"balance_threshold"`
	BalancePairs     []BalancePair `bson:"balancePairs" json:"balancePairs" yaml:"store_balance_pairs"`
}

// Validate checks structural soundness of the config.
func (c DistributionConfig) Validate() error {
	if len(c.StorePriority) == 0 {
		return ErrEmptyPriority
	}
	if c.BalanceThreshold < 0 {
		return ErrInvalidThreshold
	}
	seen := make(map[string]bool, len(c.StorePriority))
	for _, store := range c.StorePriority {
		if seen[store] {
			return fmt.Errorf("%w: %q", ErrDuplicateStore, store)
		}
		seen[store] = true
	}
	return nil
}

// IsExcluded reports whether a store is on the exclusion list.
func (c DistributionConfig) IsExcluded(store string) bool {
	for _, s := range c.ExcludedStores {
		if s == store {
			return true
		}
	}
	return false
}

// Rank returns a store's position in the priority order, or -1 for stores the
// config does not know.
func (c DistributionConfig) Rank(store string) int {
	for i, s := range c.StorePriority {
		if s == store {
			return i
		}
	}
	return -1
}

// ActiveStores returns the non-excluded stores in priority order.
func (c DistributionConfig) ActiveStores() []string {
	active := make([]string, 0, len(c.StorePriority))
	for _, store := range c.StorePriority {
		if !c.IsExcluded(store) {
			active = append(active, store)
		}
	}
	return active
}

// Partner returns the balance partner code for a store code, if the store is
// in a configured pair.
func (c DistributionConfig) Partner(code string) (string, bool) {
	for _, pair := range c.BalancePairs {
		if pair.A == code {
			return pair.B, true
		}
		if pair.B == code {
			return pair.A, true
		}
	}
	return "", false
}

// PartnerStore resolves the balance partner of a store to its full name from
// the priority list, matching by code prefix the way store codes appear in
// the source data.
func (c DistributionConfig) PartnerStore(store string) (string, bool) {
	code, ok := c.Partner(StoreCode(store))
	if !ok {
		return "", false
	}
	for _, candidate := range c.StorePriority {
		if strings.HasPrefix(candidate, code+" ") || candidate == code {
			return candidate, true
		}
	}
	return "", false
}

// Reordered returns a new config with a different priority order; the
// receiver is left untouched.
func (c DistributionConfig) Reordered(priority []string) DistributionConfig {
	next := c
	next.StorePriority = append([]string(nil), priority...)
	return next
}

// CheckConfig compares a snapshot's store columns against the config and
// returns a warning per mismatch. Mismatches are never fatal: a store missing
// from the data is treated as holding zero everywhere, and a data column the
// config does not know is excluded from targeting.
func CheckConfig(s *Snapshot, cfg DistributionConfig) []Warning {
	var warnings []Warning

	inData := make(map[string]bool)
	for _, store := range s.Stores() {
		inData[store] = true
	}

	for _, store := range cfg.StorePriority {
		if !inData[store] {
			warnings = append(warnings, Warning{
				Code:     WarnConfigMismatch,
				RowIndex: -1,
				Message:  fmt.Sprintf("store %q is in the priority config but absent from the snapshot", store),
			})
		}
	}

	known := make(map[string]bool, len(cfg.StorePriority))
	for _, store := range cfg.StorePriority {
		known[store] = true
	}
	for _, store := range s.Stores() {
		if !known[store] {
			warnings = append(warnings, Warning{
				Code:     WarnConfigMismatch,
				RowIndex: -1,
				Message:  fmt.Sprintf("store %q appears in the snapshot but is not in the priority config", store),
			})
		}
	}

	return warnings
}
