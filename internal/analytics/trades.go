package analytics

// TradeCountsByProduct counts every stored record per product, all sides
// included (open orders as well as sale records). Counts only grow as the
// simulation inserts and matches orders.
func (e *Engine) TradeCountsByProduct() map[string]int {
	counts := make(map[string]int)
	for _, o := range e.store.All() {
		counts[o.Product]++
	}
	return counts
}
