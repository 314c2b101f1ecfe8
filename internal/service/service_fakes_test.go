package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"photopro-be/internal/dto"
	"photopro-be/internal/entity"
	"photopro-be/internal/repository/contract"
	"photopro-be/internal/repository/specification"
	"photopro-be/internal/repository/unitofwork"
	"photopro-be/pkg/airwallex"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specifications are matched by
// type-switching on the concrete filters the services actually use.

type fakeState struct {
	users    map[uuid.UUID]*entity.User
	plans    []*entity.SubscriptionPlan
	subs     map[uuid.UUID]*entity.UserSubscription // keyed by user id
	txs      map[string]*entity.PaymentTransaction  // keyed by intent id
	usage    []*entity.AiUsage
	projects []*entity.UserProject
}

func newFakeState() *fakeState {
	return &fakeState{
		users: make(map[uuid.UUID]*entity.User),
		subs:  make(map[uuid.UUID]*entity.UserSubscription),
		txs:   make(map[string]*entity.PaymentTransaction),
	}
}

type fakeUowFactory struct {
	state *fakeState
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct {
	state *fakeState
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{state: u.state}
}
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &fakeSubscriptionRepo{state: u.state}
}
func (u *fakeUow) PaymentRepository() contract.PaymentRepository {
	return &fakePaymentRepo{state: u.state}
}
func (u *fakeUow) ProjectRepository() contract.ProjectRepository {
	return &fakeProjectRepo{state: u.state}
}
func (u *fakeUow) UsageRepository() contract.UsageRepository {
	return &fakeUsageRepo{state: u.state}
}

// --- Users ---

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.state.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.state.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.state.users {
		if matchUser(user, specs) {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, user := range r.state.users {
		if matchUser(user, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) SetBillingCustomerId(ctx context.Context, userId uuid.UUID, customerId string) error {
	user, ok := r.state.users[userId]
	if !ok {
		return errors.New("user not found")
	}
	user.BillingCustomerId = &customerId
	return nil
}

func matchUser(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		case specification.ByUsername:
			if user.Username != s.Username {
				return false
			}
		}
	}
	return true
}

// --- Plans & Subscriptions ---

type fakeSubscriptionRepo struct {
	state *fakeState
}

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.state.plans = append(r.state.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, plan := range r.state.plans {
		if matchPlan(plan, specs) {
			return plan, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, plan := range r.state.plans {
		if matchPlan(plan, specs) {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CountPlans(ctx context.Context, specs ...specification.Specification) (int64, error) {
	plans, _ := r.FindAllPlans(ctx, specs...)
	return int64(len(plans)), nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	if _, exists := r.state.subs[sub.UserId]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	r.state.subs[sub.UserId] = sub
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.state.subs[sub.UserId] = sub
	return nil
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	for _, sub := range r.state.subs {
		if matchSubscription(sub, specs) {
			return sub, nil
		}
	}
	return nil, nil
}

func matchPlan(plan *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if plan.Id != s.ID {
				return false
			}
		case specification.ActivePlans:
			if !plan.IsActive {
				return false
			}
		case specification.FilterBy:
			if s.Field == "name" && plan.Name != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

func matchSubscription(sub *entity.UserSubscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if sub.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if sub.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

// --- Transactions ---

type fakePaymentRepo struct {
	state *fakeState
}

func (r *fakePaymentRepo) CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	if _, exists := r.state.txs[tx.AirwallexPaymentIntentId]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	r.state.txs[tx.AirwallexPaymentIntentId] = tx
	return nil
}

func (r *fakePaymentRepo) UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	r.state.txs[tx.AirwallexPaymentIntentId] = tx
	return nil
}

func (r *fakePaymentRepo) FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	for _, tx := range r.state.txs {
		if matchTransaction(tx, specs) {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var out []*entity.PaymentTransaction
	for _, tx := range r.state.txs {
		if matchTransaction(tx, specs) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func matchTransaction(tx *entity.PaymentTransaction, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if tx.Id != s.ID {
				return false
			}
		case specification.ByPaymentIntentId:
			if tx.AirwallexPaymentIntentId != s.IntentId {
				return false
			}
		case specification.UserOwnedBy:
			if tx.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

// --- Projects ---

type fakeProjectRepo struct {
	state *fakeState
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *entity.UserProject) error {
	r.state.projects = append(r.state.projects, project)
	return nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *entity.UserProject) error {
	for i, p := range r.state.projects {
		if p.Id == project.Id {
			r.state.projects[i] = project
			return nil
		}
	}
	return errors.New("project not found")
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	for i, p := range r.state.projects {
		if p.Id == id && p.UserId == userId {
			r.state.projects = append(r.state.projects[:i], r.state.projects[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProject, error) {
	for _, p := range r.state.projects {
		if matchProject(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProject, error) {
	var out []*entity.UserProject
	for _, p := range r.state.projects {
		if matchProject(p, specs) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

func matchProject(p *entity.UserProject, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if p.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

// --- Usage ---

type fakeUsageRepo struct {
	state *fakeState
}

func (r *fakeUsageRepo) Create(ctx context.Context, usage *entity.AiUsage) error {
	r.state.usage = append(r.state.usage, usage)
	return nil
}

func (r *fakeUsageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AiUsage, error) {
	var out []*entity.AiUsage
	for _, u := range r.state.usage {
		if matchUsage(u, specs) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUsageRepo) TotalCredits(ctx context.Context, userId uuid.UUID, month, year int) (int, error) {
	total := 0
	for _, u := range r.state.usage {
		if u.UserId == userId && u.Month == month && u.Year == year {
			total += u.CreditsUsed
		}
	}
	return total, nil
}

func matchUsage(u *entity.AiUsage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if u.UserId != s.UserID {
				return false
			}
		case specification.InMonth:
			if u.Month != s.Month || u.Year != s.Year {
				return false
			}
		}
	}
	return true
}

// --- External collaborators ---

type fakeGateway struct {
	customers int
	checkouts []airwallex.CheckoutParams
	failNext  bool
}

func (g *fakeGateway) CreateBillingCustomer(ctx context.Context, email, firstName, lastName string) (*airwallex.BillingCustomer, error) {
	if g.failNext {
		return nil, errors.New("gateway unavailable")
	}
	g.customers++
	return &airwallex.BillingCustomer{Id: "bcus_test", Email: email}, nil
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, p airwallex.CheckoutParams) (*airwallex.CheckoutSession, error) {
	if g.failNext {
		return nil, errors.New("gateway unavailable")
	}
	g.checkouts = append(g.checkouts, p)
	return &airwallex.CheckoutSession{
		Id:  "int_test_" + uuid.NewString()[:8],
		URL: "https://checkout.airwallex.test/session",
	}, nil
}

type fakeGuard struct {
	claimed map[string]bool
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{claimed: make(map[string]bool)}
}

func (g *fakeGuard) Claim(ctx context.Context, deliveryId string) (bool, error) {
	if g.claimed[deliveryId] {
		return false, nil
	}
	g.claimed[deliveryId] = true
	return true, nil
}

func (g *fakeGuard) Release(ctx context.Context, deliveryId string) error {
	delete(g.claimed, deliveryId)
	return nil
}

type fakeReceiptPublisher struct {
	receipts []*dto.PaymentReceiptMessage
}

func (p *fakeReceiptPublisher) PublishPaymentReceipt(msg *dto.PaymentReceiptMessage) error {
	p.receipts = append(p.receipts, msg)
	return nil
}

type fakeLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *fakeLogger) record(module, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, module+": "+message)
}

func (l *fakeLogger) Debug(module, message string, details map[string]interface{}) {
	l.record(module, message)
}

func (l *fakeLogger) Info(module, message string, details map[string]interface{}) {
	l.record(module, message)
}

func (l *fakeLogger) Warn(module, message string, details map[string]interface{}) {
	l.record(module, message)
}

func (l *fakeLogger) Error(module, message string, details map[string]interface{}) {
	l.record(module, message)
}

func (l *fakeLogger) Sync() error { return nil }

func (l *fakeLogger) entryCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

type fakeMailer struct {
	mu       sync.Mutex
	welcomes int
	receipts int
}

func (m *fakeMailer) SendWelcome(toEmail, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes++
	return nil
}

func (m *fakeMailer) SendPaymentReceipt(toEmail, planName, billingCycle string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts++
	return nil
}

func (m *fakeMailer) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.welcomes
}
