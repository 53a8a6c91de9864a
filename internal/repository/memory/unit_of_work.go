package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// UnitOfWork is the in-memory counterpart of the GORM unit of work. Begin
// snapshots the store; Rollback restores the snapshot, so all-or-nothing
// semantics hold exactly as they do with a database transaction.
type UnitOfWork struct {
	store *Store
	snap  *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.store)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.snap = u.store.snapshot()
	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.snap == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snap = nil
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if u.snap == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.restore(u.snap)
	u.snap = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() contract.OrderRepository {
	return &orderRepo{store: u.store}
}

func (u *UnitOfWork) ViolationRepository() contract.ViolationRepository {
	return &violationRepo{store: u.store}
}

func (u *UnitOfWork) ResolutionRepository() contract.ResolutionRepository {
	return &resolutionRepo{store: u.store}
}

func (u *UnitOfWork) DepositRefundRepository() contract.DepositRefundRepository {
	return &refundRepo{store: u.store}
}

func (u *UnitOfWork) DisputeMessageRepository() contract.DisputeMessageRepository {
	return &messageRepo{store: u.store}
}

func (u *UnitOfWork) BankAccountRepository() contract.BankAccountRepository {
	return &accountRepo{store: u.store}
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return &userRepo{store: u.store}
}

// --- order repository ---

type orderRepo struct {
	store *Store
}

func (r *orderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	f := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for id, order := range r.store.orders {
		if f.matchID(id) && f.matchStatus(string(order.Status)) {
			o := order
			return &o, nil
		}
	}
	return nil, nil
}

func (r *orderRepo) FindOneWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	o := order
	o.Items = append([]entity.OrderItem(nil), order.Items...)
	return &o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return apperror.NotFound("order", "unknown order id")
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.store.orders[id] = order
	return nil
}

// --- violation repository ---

type violationRepo struct {
	store *Store
}

func (r *violationRepo) Create(ctx context.Context, violation *entity.RentalViolation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if violation.ID == uuid.Nil {
		violation.ID = uuid.New()
	}
	now := time.Now()
	violation.CreatedAt = now
	violation.UpdatedAt = now
	r.store.violations[violation.ID] = *violation
	return nil
}

func (r *violationRepo) findAll(f filters) []*entity.RentalViolation {
	var out []*entity.RentalViolation
	for id, v := range r.store.violations {
		if !f.matchID(id) || !f.matchStatus(string(v.Status)) {
			continue
		}
		if f.orderID != nil && v.OrderID != *f.orderID {
			continue
		}
		vv := v
		out = append(out, &vv)
	}
	sortByCreatedAt(out, f.orderDesc, func(v *entity.RentalViolation) int64 { return v.CreatedAt.UnixNano() })
	return paginate(out, f)
}

func (r *violationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := r.findAll(parseSpecs(specs))
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *violationRepo) FindOneWithEvidence(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error) {
	violation, err := r.FindOne(ctx, specs...)
	if err != nil || violation == nil {
		return violation, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	violation.Evidence = append([]entity.ViolationEvidence(nil), r.store.evidence[violation.ID]...)
	return violation, nil
}

func (r *violationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RentalViolation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findAll(parseSpecs(specs)), nil
}

func (r *violationRepo) UpdateGuarded(ctx context.Context, violation *entity.RentalViolation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.violations[violation.ID]
	if !ok || current.Version != violation.Version {
		return apperror.InvalidState("violation", "violation was modified concurrently, please retry")
	}
	violation.Version++
	violation.UpdatedAt = time.Now()
	r.store.violations[violation.ID] = *violation
	return nil
}

func (r *violationRepo) AddEvidence(ctx context.Context, evidence []entity.ViolationEvidence) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ev := range evidence {
		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
		r.store.evidence[ev.ViolationID] = append(r.store.evidence[ev.ViolationID], ev)
	}
	return nil
}

// --- resolution repository ---

type resolutionRepo struct {
	store *Store
}

func (r *resolutionRepo) Create(ctx context.Context, resolution *entity.IssueResolution) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.resolutions[resolution.ViolationID]; exists {
		return apperror.InvalidState("issue_resolution", "violation already has a resolution")
	}
	if resolution.ID == uuid.Nil {
		resolution.ID = uuid.New()
	}
	resolution.CreatedAt = time.Now()
	r.store.resolutions[resolution.ViolationID] = *resolution
	return nil
}

func (r *resolutionRepo) FindOneByViolation(ctx context.Context, violationID uuid.UUID) (*entity.IssueResolution, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	resolution, ok := r.store.resolutions[violationID]
	if !ok {
		return nil, nil
	}
	res := resolution
	return &res, nil
}

// --- deposit refund repository ---

type refundRepo struct {
	store *Store
}

func (r *refundRepo) Create(ctx context.Context, refund *entity.DepositRefund) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if refund.ID == uuid.Nil {
		refund.ID = uuid.New()
	}
	now := time.Now()
	refund.CreatedAt = now
	refund.UpdatedAt = now
	r.store.refunds[refund.ID] = *refund
	return nil
}

func (r *refundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DepositRefund, error) {
	f := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for id, refund := range r.store.refunds {
		if !f.matchID(id) || !f.matchStatus(string(refund.Status)) {
			continue
		}
		if f.orderID != nil && refund.OrderID != *f.orderID {
			continue
		}
		rf := refund
		return &rf, nil
	}
	return nil, nil
}

func (r *refundRepo) FindOneByOrder(ctx context.Context, orderID uuid.UUID) (*entity.DepositRefund, error) {
	return r.FindOne(ctx, specification.ByOrder{OrderID: orderID})
}

func (r *refundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DepositRefund, error) {
	f := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.DepositRefund
	for id, refund := range r.store.refunds {
		if !f.matchID(id) || !f.matchStatus(string(refund.Status)) {
			continue
		}
		rf := refund
		out = append(out, &rf)
	}
	sortByCreatedAt(out, f.orderDesc, func(rf *entity.DepositRefund) int64 { return rf.CreatedAt.UnixNano() })
	return paginate(out, f), nil
}

func (r *refundRepo) UpdateGuarded(ctx context.Context, refund *entity.DepositRefund) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.refunds[refund.ID]
	if !ok || current.Version != refund.Version {
		return apperror.InvalidState("deposit_refund", "refund was modified concurrently, please retry")
	}
	refund.Version++
	refund.UpdatedAt = time.Now()
	r.store.refunds[refund.ID] = *refund
	return nil
}

// --- dispute message repository ---

type messageRepo struct {
	store *Store
}

func (r *messageRepo) Create(ctx context.Context, message *entity.DisputeMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *messageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisputeMessage, error) {
	f := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.DisputeMessage
	for i := range r.store.messages {
		m := r.store.messages[i]
		if f.violationID != nil && m.ViolationID != *f.violationID {
			continue
		}
		out = append(out, &m)
	}
	sortByCreatedAt(out, f.orderDesc, func(m *entity.DisputeMessage) int64 { return m.CreatedAt.UnixNano() })
	return paginate(out, f), nil
}

// --- bank account repository ---

type accountRepo struct {
	store *Store
}

func (r *accountRepo) Exists(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	account, ok := r.store.accounts[id]
	return ok && account.OwnerID == ownerID, nil
}

func (r *accountRepo) FindOne(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, nil
	}
	a := account
	return &a, nil
}

// --- user repository ---

type userRepo struct {
	store *Store
}

func (r *userRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	f := parseSpecs(specs)
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for id, user := range r.store.users {
		if f.matchID(id) {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindAllByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.User
	for _, user := range r.store.users {
		if user.Role == role {
			u := user
			out = append(out, &u)
		}
	}
	return out, nil
}
