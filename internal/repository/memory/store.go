package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"github.com/google/uuid"
)

// Store is an in-memory mirror of the relational schema. It backs the
// in-memory UnitOfWork used by unit tests and local development runs.
type Store struct {
	mu sync.RWMutex

	orders      map[uuid.UUID]entity.Order
	violations  map[uuid.UUID]entity.RentalViolation
	evidence    map[uuid.UUID][]entity.ViolationEvidence
	resolutions map[uuid.UUID]entity.IssueResolution // keyed by violation id (1:1)
	refunds     map[uuid.UUID]entity.DepositRefund
	messages    []entity.DisputeMessage
	users       map[uuid.UUID]entity.User
	accounts    map[uuid.UUID]entity.BankAccount
}

func NewStore() *Store {
	return &Store{
		orders:      make(map[uuid.UUID]entity.Order),
		violations:  make(map[uuid.UUID]entity.RentalViolation),
		evidence:    make(map[uuid.UUID][]entity.ViolationEvidence),
		resolutions: make(map[uuid.UUID]entity.IssueResolution),
		refunds:     make(map[uuid.UUID]entity.DepositRefund),
		users:       make(map[uuid.UUID]entity.User),
		accounts:    make(map[uuid.UUID]entity.BankAccount),
	}
}

// Seed helpers for tests and local bootstrapping.

func (s *Store) PutOrder(order entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

func (s *Store) PutUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *Store) PutBankAccount(account entity.BankAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
}

func (s *Store) PutViolation(v entity.RentalViolation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.violations[v.ID] = v
}

func (s *Store) PutRefund(r entity.DepositRefund) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refunds[r.ID] = r
}

func (s *Store) Order(id uuid.UUID) (entity.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) Violation(id uuid.UUID) (entity.RentalViolation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.violations[id]
	return v, ok
}

func (s *Store) RefundByOrder(orderID uuid.UUID) (entity.DepositRefund, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.refunds {
		if r.OrderID == orderID {
			return r, true
		}
	}
	return entity.DepositRefund{}, false
}

func (s *Store) snapshot() *Store {
	snap := NewStore()
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.violations {
		snap.violations[k] = v
	}
	for k, v := range s.evidence {
		snap.evidence[k] = append([]entity.ViolationEvidence(nil), v...)
	}
	for k, v := range s.resolutions {
		snap.resolutions[k] = v
	}
	for k, v := range s.refunds {
		snap.refunds[k] = v
	}
	snap.messages = append([]entity.DisputeMessage(nil), s.messages...)
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	return snap
}

func (s *Store) restore(snap *Store) {
	s.orders = snap.orders
	s.violations = snap.violations
	s.evidence = snap.evidence
	s.resolutions = snap.resolutions
	s.refunds = snap.refunds
	s.messages = snap.messages
	s.users = snap.users
	s.accounts = snap.accounts
}

// filters translates the query specifications the GORM repositories consume
// into an in-memory predicate plus ordering/paging directives.
type filters struct {
	id          *uuid.UUID
	ids         []uuid.UUID
	orderID     *uuid.UUID
	violationID *uuid.UUID
	statuses    []string
	fields      map[string]interface{}
	orderDesc   bool
	limit       int
	offset      int
}

func parseSpecs(specs []specification.Specification) filters {
	f := filters{limit: -1, fields: make(map[string]interface{})}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.ByIDs:
			f.ids = s.IDs
		case specification.ByOrder:
			id := s.OrderID
			f.orderID = &id
		case specification.ByViolation:
			id := s.ViolationID
			f.violationID = &id
		case specification.ByStatus:
			f.statuses = append(f.statuses, s.Status)
		case specification.ByStatuses:
			f.statuses = append(f.statuses, s.Statuses...)
		case specification.FilterBy:
			if s.Field == "status" {
				f.statuses = append(f.statuses, fmt.Sprint(s.Value))
			} else {
				f.fields[s.Field] = s.Value
			}
		case specification.OrderBy:
			f.orderDesc = s.Desc
		case specification.Pagination:
			f.limit = s.Limit
			f.offset = s.Offset
		}
	}
	return f
}

func (f filters) matchID(id uuid.UUID) bool {
	if f.id != nil && *f.id != id {
		return false
	}
	if len(f.ids) > 0 {
		found := false
		for _, candidate := range f.ids {
			if candidate == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f filters) matchStatus(status string) bool {
	if len(f.statuses) == 0 {
		return true
	}
	for _, s := range f.statuses {
		if s == status {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, f filters) []T {
	if f.offset > 0 {
		if f.offset >= len(items) {
			return nil
		}
		items = items[f.offset:]
	}
	if f.limit >= 0 && f.limit < len(items) {
		items = items[:f.limit]
	}
	return items
}

func sortByCreatedAt[T any](items []T, desc bool, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return createdAt(items[i]) > createdAt(items[j])
		}
		return createdAt(items[i]) < createdAt(items[j])
	})
}
