// Package cart keeps per-session order ledgers. Each cart is identified
// by a client-held ID; lines merge by product and totals are recomputed
// on every mutation rather than stored.
package cart

import (
	"github.com/shopspring/decimal"
)

// Line is a single cart entry. Name and Price are captured at add time
// so later menu edits do not reprice an in-flight cart.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Snapshot is a cart read model with derived aggregates.
type Snapshot struct {
	ID    string          `json:"id"`
	Lines []Line          `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func snapshotOf(id string, lines []Line) Snapshot {
	snap := Snapshot{ID: id, Lines: make([]Line, len(lines)), Total: decimal.Zero}
	copy(snap.Lines, lines)
	for _, line := range lines {
		snap.Count += line.Quantity
		snap.Total = snap.Total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return snap
}
