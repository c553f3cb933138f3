package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/metrics"
	"github.com/cafev2/storefront-backend/pkg/security"
)

// Store persists cart ledgers across restarts. Implementations are
// best-effort; the in-memory ledger is authoritative while the process
// lives.
type Store interface {
	Load(ctx context.Context, cartID string) ([]Line, error)
	Save(ctx context.Context, cartID string, lines []Line) error
	Delete(ctx context.Context, cartID string) error
}

// Service mutates cart ledgers.
type Service interface {
	Get(ctx context.Context, cartID string) (Snapshot, error)
	Add(ctx context.Context, cartID string, line Line) (Snapshot, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, delta int) (Snapshot, error)
	Remove(ctx context.Context, cartID, productID string) (Snapshot, error)
	Clear(ctx context.Context, cartID string) error
}

type service struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.CartMetrics

	mu      sync.Mutex
	ledgers map[string][]Line
}

// NewService builds a cart service. The store may be nil; carts then
// live only in process memory.
func NewService(store Store, logg *logger.Logger, cartMetrics *metrics.CartMetrics) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:   store,
		logg:    logg,
		metrics: cartMetrics,
		ledgers: map[string][]Line{},
	}, nil
}

// Get returns the cart snapshot, pulling the ledger from the store on a
// memory miss so carts survive restarts.
func (s *service) Get(ctx context.Context, cartID string) (Snapshot, error) {
	if err := validateCartID(cartID); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, cartID)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshotOf(cartID, lines), nil
}

// Add appends a line or, when the product is already in the cart, folds
// the quantity into the existing line. The first-seen name and price win.
func (s *service) Add(ctx context.Context, cartID string, line Line) (Snapshot, error) {
	if err := validateCartID(cartID); err != nil {
		return Snapshot{}, err
	}
	if strings.TrimSpace(line.ProductID) == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	line.Name = security.SanitizeText(line.Name)
	if line.Price.IsNegative() {
		line.Price = decimal.Zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, cartID)
	if err != nil {
		return Snapshot{}, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}

	s.commitLocked(ctx, cartID, lines)
	s.metrics.IncMutation("add")
	return snapshotOf(cartID, lines), nil
}

// UpdateQuantity shifts a line's quantity by delta, flooring at zero.
// A line driven to zero leaves the cart; an unknown product is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, cartID, productID string, delta int) (Snapshot, error) {
	if err := validateCartID(cartID); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, cartID)
	if err != nil {
		return Snapshot{}, err
	}

	changed := false
	next := lines[:0]
	for _, line := range lines {
		if line.ProductID == productID {
			changed = true
			line.Quantity += delta
			if line.Quantity <= 0 {
				continue
			}
		}
		next = append(next, line)
	}

	if changed {
		s.commitLocked(ctx, cartID, next)
		s.metrics.IncMutation("update_quantity")
	}
	return snapshotOf(cartID, next), nil
}

// Remove drops a line outright regardless of its quantity.
func (s *service) Remove(ctx context.Context, cartID, productID string) (Snapshot, error) {
	if err := validateCartID(cartID); err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, cartID)
	if err != nil {
		return Snapshot{}, err
	}

	next := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		next = append(next, line)
	}

	if removed {
		s.commitLocked(ctx, cartID, next)
		s.metrics.IncMutation("remove")
	}
	return snapshotOf(cartID, next), nil
}

// Clear empties the cart and drops the persisted copy.
func (s *service) Clear(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledgers, cartID)
	if s.store != nil {
		if err := s.store.Delete(ctx, cartID); err != nil {
			s.logg.Error(ctx, "deleting persisted cart failed", err)
		}
	}
	s.metrics.IncMutation("clear")
	return nil
}

// loadLocked returns the in-memory ledger, falling back to the store on a
// miss. Store failures degrade to an empty cart rather than failing the
// request.
func (s *service) loadLocked(ctx context.Context, cartID string) ([]Line, error) {
	if lines, ok := s.ledgers[cartID]; ok {
		return lines, nil
	}
	if s.store == nil {
		return nil, nil
	}

	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		s.logg.Error(ctx, "loading persisted cart failed; starting empty", err)
		return nil, nil
	}
	if lines != nil {
		s.ledgers[cartID] = lines
	}
	return lines, nil
}

func (s *service) commitLocked(ctx context.Context, cartID string, lines []Line) {
	s.ledgers[cartID] = lines
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, cartID, lines); err != nil {
		s.logg.Error(ctx, "persisting cart failed; ledger kept in memory", err)
	}
}

func validateCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	return nil
}
