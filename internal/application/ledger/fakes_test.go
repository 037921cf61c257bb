package ledger_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. El decremento condicional
// del fake es atómico bajo mutex, igual que la sentencia UPDATE condicional
// en PostgreSQL: así las propiedades de concurrencia se ejercitan de verdad.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	movements map[string]*entity.StockMovement
	order     []string // IDs de movimientos en orden de inserción
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.Item{},
		movements: map[string]*entity.StockMovement{},
	}
}

func (s *memStore) addItem(id, unitID string, stock decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.items[id] = &entity.Item{
		ID: id, UnitID: unitID, Name: "item-" + id,
		CurrentStock: stock, CreatedAt: now, UpdatedAt: now,
	}
}

// netBalance reconstruye el saldo desde el log con el predicado del invariante
// (reverted = false, deleted_at IS NULL). Para verificar que el saldo
// materializado nunca deriva del kardex.
func (s *memStore) netBalance(itemID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	net := decimal.Zero
	for _, m := range s.movements {
		if m.ItemID != itemID || m.Reverted || m.DeletedAt != nil {
			continue
		}
		net = net.Add(m.SignedQuantity())
	}
	return net
}

func (s *memStore) movimiento(id string) (*entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[id]
	if !ok {
		return nil, errors.New("movimiento no existe")
	}
	copied := *m
	return &copied, nil
}

func (s *memStore) stock(itemID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[itemID].CurrentStock
}

type fakeItemRepo struct{ s *memStore }

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Item
	for _, item := range r.s.items {
		if item.UnitID == unitID {
			copied := *item
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (r *fakeItemRepo) IncrementStock(itemID string, qty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[itemID]
	if !ok {
		return errors.New("ítem no existe")
	}
	item.CurrentStock = item.CurrentStock.Add(qty)
	return nil
}

// TryDecrementStock chequeo y resta bajo el mismo lock: equivale a la
// sentencia condicional "UPDATE ... WHERE current_stock >= qty".
func (r *fakeItemRepo) TryDecrementStock(itemID string, qty decimal.Decimal) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[itemID]
	if !ok {
		return false, errors.New("ítem no existe")
	}
	if item.CurrentStock.LessThan(qty) {
		return false, nil
	}
	item.CurrentStock = item.CurrentStock.Sub(qty)
	return true, nil
}

type fakeMovementRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *m
	r.s.movements[m.ID] = &copied
	r.s.order = append(r.s.order, m.ID)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMovementRepo) GetByIDForUpdate(id string) (*entity.StockMovement, error) {
	return r.GetByID(id)
}

func (r *fakeMovementRepo) MarkReverted(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok || m.Reverted {
		return false, nil
	}
	m.Reverted = true
	return true, nil
}

func (r *fakeMovementRepo) UpdateNotes(id, notes string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok || m.DeletedAt != nil {
		return false, nil
	}
	m.Notes = notes
	return true, nil
}

func (r *fakeMovementRepo) SoftDelete(id string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok || m.DeletedAt != nil {
		return false, nil
	}
	m.DeletedAt = &at
	return true, nil
}

func (r *fakeMovementRepo) List(unitID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*entity.StockMovement
	for i := len(r.s.order) - 1; i >= 0; i-- { // más recientes primero
		m := r.s.movements[r.s.order[i]]
		if m.UnitID != unitID {
			continue
		}
		if !f.IncludeDeleted && m.DeletedAt != nil {
			continue
		}
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.MovementType != "" && m.MovementType != f.MovementType {
			continue
		}
		if f.Reason != "" && m.Reason != f.Reason {
			continue
		}
		if f.PerformedBy != "" && m.PerformedBy != f.PerformedBy {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		copied := *m
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for _, id := range r.s.order {
		m := r.s.movements[id]
		if m.ItemID != itemID || m.DeletedAt != nil {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		copied := *m
		list = append(list, &copied)
	}
	return list, nil
}

func (r *fakeMovementRepo) Summary(unitID string, from, to *time.Time) (*entity.LedgerSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	summary := &entity.LedgerSummary{
		TotalIn:   decimal.Zero,
		TotalOut:  decimal.Zero,
		NetChange: decimal.Zero,
		ByReason:  map[string]decimal.Decimal{},
	}
	for _, m := range r.s.movements {
		if m.UnitID != unitID || m.Reverted || m.DeletedAt != nil {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		if m.MovementType == entity.MovementTypeOUT {
			summary.TotalOut = summary.TotalOut.Add(m.Quantity)
		} else {
			summary.TotalIn = summary.TotalIn.Add(m.Quantity)
		}
		summary.ByReason[m.Reason] = summary.ByReason[m.Reason].Add(m.SignedQuantity())
	}
	summary.NetChange = summary.TotalIn.Sub(summary.TotalOut)
	return summary, nil
}

// fakeActorRepo directorio de personal en memoria. failWith simula una caída
// del directorio (lookup que falla).
type fakeActorRepo struct {
	mu       sync.Mutex
	actors   map[string]*entity.Actor
	failWith error
}

var _ repository.ActorRepository = (*fakeActorRepo)(nil)

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{actors: map[string]*entity.Actor{}}
}

func (r *fakeActorRepo) add(id, role string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors[id] = &entity.Actor{ID: id, UnitID: unidadID, Name: "actor-" + id, Role: role, IsActive: active}
}

func (r *fakeActorRepo) GetByID(id string) (*entity.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	actor, ok := r.actors[id]
	if !ok {
		return nil, nil
	}
	copied := *actor
	return &copied, nil
}

// fakeTxRunner ejecuta el callback directo sobre los fakes compartidos.
// La atomicidad real la da la BD; aquí basta con que el decremento
// condicional sea atómico para ejercitar las carreras.
type fakeTxRunner struct {
	movRepo  repository.StockMovementRepository
	itemRepo repository.ItemRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return fn(r.movRepo, r.itemRepo)
}
