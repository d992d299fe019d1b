package domain

// Ranking supplies the destination priority order for a product. Engines
// depend only on this contract; the order may come from the static config or
// from sales-derived data.
type Ranking interface {
	// Order returns non-excluded store names, best destination first.
	Order(product string) []string
}

// StaticRanking orders destinations by the config's priority list for every
// product.
type StaticRanking struct {
	active []string
}

// NewStaticRanking builds a ranking from a config's active stores.
func NewStaticRanking(cfg DistributionConfig) StaticRanking {
	return StaticRanking{active: cfg.ActiveStores()}
}

// Order implements Ranking.
func (r StaticRanking) Order(string) []string {
	return r.active
}
