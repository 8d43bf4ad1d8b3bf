// Package testutil holds in-memory fakes for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/notification"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/google/uuid"
)

// OrderStore is an in-memory repositories.OrderRepo
type OrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order

	CreateErr error
	UpdateErr error
	GetErr    error
	// OnCreate runs before the uniqueness check, outside the lock
	OnCreate func(order *models.Order)
}

var _ repositories.OrderRepo = (*OrderStore)(nil)

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]*models.Order)}
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	c.StatusHistory = append([]models.StatusEntry(nil), o.StatusHistory...)
	if o.VoucherCode != nil {
		code := *o.VoucherCode
		c.VoucherCode = &code
	}
	if o.DeliveredAt != nil {
		at := *o.DeliveredAt
		c.DeliveredAt = &at
	}
	return &c
}

// Put stores order as-is, bypassing hooks and errors
func (s *OrderStore) Put(order *models.Order) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.orders[order.ID] = cloneOrder(order)
	return order
}

// All returns a copy of every stored order
func (s *OrderStore) All() []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if s.OnCreate != nil {
		s.OnCreate(order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	for _, o := range s.orders {
		if o.TrackingCode == order.TrackingCode {
			return repositories.ErrDuplicateTrackingCode
		}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repositories.ErrOrderNotFound
	}
	o, ok := s.orders[uid]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *OrderStore) GetByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, o := range s.orders {
		if strings.EqualFold(o.TrackingCode, code) {
			return cloneOrder(o), nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (s *OrderStore) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for _, o := range s.orders {
		if o.TrackingCode == reference {
			return cloneOrder(o), nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (s *OrderStore) List(ctx context.Context, status models.Status, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *OrderStore) ListCreatedBetween(ctx context.Context, status models.Status, from, to time.Time, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		if status == "" || o.Status == status {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *OrderStore) ConfirmPending(ctx context.Context, order *models.Order) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return false, s.UpdateErr
	}
	stored, ok := s.orders[order.ID]
	if !ok || stored.Status != models.StatusPending {
		return false, nil
	}
	updated := cloneOrder(order)
	updated.CreatedAt = stored.CreatedAt
	updated.PromoSent = stored.PromoSent
	updated.UpdatedAt = time.Now()
	s.orders[order.ID] = updated
	return true, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, order *models.Order, from models.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return false, s.UpdateErr
	}
	stored, ok := s.orders[order.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = order.Status
	stored.StatusHistory = append([]models.StatusEntry(nil), order.StatusHistory...)
	stored.DeliveredAt = order.DeliveredAt
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (s *OrderStore) MarkPromoSent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if o, ok := s.orders[id]; ok {
		o.PromoSent = true
	}
	return nil
}

func (s *OrderStore) ListPromoCandidates(ctx context.Context, deliveredBefore time.Time, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.Status == models.StatusDelivered && !o.PromoSent && o.Email != "" &&
			o.DeliveredAt != nil && o.DeliveredAt.Before(deliveredBefore) {
			out = append(out, *cloneOrder(o))
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *OrderStore) DeleteStalePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, o := range s.orders {
		if o.Status == models.StatusPending && o.CreatedAt.Before(createdBefore) {
			delete(s.orders, id)
			n++
		}
	}
	return n, nil
}

func (s *OrderStore) CountPriorOrders(ctx context.Context, email, excludeRef string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.orders {
		if strings.EqualFold(o.Email, email) && o.Status != models.StatusPending && o.TrackingCode != excludeRef {
			n++
		}
	}
	return n, nil
}

func (s *OrderStore) CountPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, o := range s.orders {
		if strings.EqualFold(o.Email, email) && o.VoucherCode != nil && *o.VoucherCode == code &&
			o.Status != models.StatusPending && o.TrackingCode != excludeRef {
			n++
		}
	}
	return n, nil
}

// VoucherStore is an in-memory repositories.VoucherRepo
type VoucherStore struct {
	mu       sync.Mutex
	vouchers map[string]*models.Voucher

	IncrementErr error
}

var _ repositories.VoucherRepo = (*VoucherStore)(nil)

func NewVoucherStore(vouchers ...*models.Voucher) *VoucherStore {
	s := &VoucherStore{vouchers: make(map[string]*models.Voucher)}
	for _, v := range vouchers {
		c := *v
		s.vouchers[v.Code] = &c
	}
	return s
}

func (s *VoucherStore) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[code]
	if !ok {
		return nil, repositories.ErrVoucherNotFound
	}
	c := *v
	return &c, nil
}

func (s *VoucherStore) List(ctx context.Context) ([]models.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Voucher, 0, len(s.vouchers))
	for _, v := range s.vouchers {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *VoucherStore) Create(ctx context.Context, voucher *models.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vouchers[voucher.Code]; ok {
		return repositories.ErrDuplicateVoucher
	}
	if voucher.ID == uuid.Nil {
		voucher.ID = uuid.New()
	}
	c := *voucher
	s.vouchers[voucher.Code] = &c
	return nil
}

func (s *VoucherStore) Update(ctx context.Context, voucher *models.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.vouchers[voucher.Code]
	if !ok {
		return repositories.ErrVoucherNotFound
	}
	if voucher.UsageLimit != nil && stored.UsageCount > *voucher.UsageLimit {
		return repositories.ErrUsageLimitBelow
	}
	c := *voucher
	c.ID = stored.ID
	c.UsageCount = stored.UsageCount
	s.vouchers[voucher.Code] = &c
	return nil
}

func (s *VoucherStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vouchers[code]; !ok {
		return repositories.ErrVoucherNotFound
	}
	delete(s.vouchers, code)
	return nil
}

func (s *VoucherStore) IncrementUsage(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IncrementErr != nil {
		return false, s.IncrementErr
	}
	v, ok := s.vouchers[code]
	if !ok || v.Exhausted() {
		return false, nil
	}
	v.UsageCount++
	return true, nil
}

// SetUsage overwrites a voucher's usage count
func (s *VoucherStore) SetUsage(code string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vouchers[code]; ok {
		v.UsageCount = count
	}
}

// Gateway is a scripted payment.Gateway
type Gateway struct {
	mu           sync.Mutex
	Transactions map[string]*payment.Transaction
	Initialized  []payment.InitializeRequest
	InitErr      error
	VerifyErr    error
	VerifyCalls  int
	// Signature accepted by VerifySignature
	Signature string
}

var _ payment.Gateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{Transactions: make(map[string]*payment.Transaction), Signature: "valid-signature"}
}

func (g *Gateway) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.InitErr != nil {
		return nil, g.InitErr
	}
	g.Initialized = append(g.Initialized, req)
	return &payment.InitializeResult{
		AuthorizationURL: "https://checkout.test/" + req.Reference,
		AccessCode:       "access_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *Gateway) Verify(ctx context.Context, reference string) (*payment.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.VerifyCalls++
	if g.VerifyErr != nil {
		return nil, g.VerifyErr
	}
	tx, ok := g.Transactions[reference]
	if !ok {
		return &payment.Transaction{Status: payment.StatusAbandoned, Reference: reference}, nil
	}
	c := *tx
	return &c, nil
}

func (g *Gateway) VerifySignature(body []byte, signature string) bool {
	return signature != "" && signature == g.Signature
}

func (g *Gateway) Name() string {
	return "fake"
}

// Sent is one recorded notification
type Sent struct {
	Kind notification.Kind
	Data notification.Data
}

// Sender records notifications; Err makes every send fail
type Sender struct {
	mu   sync.Mutex
	sent []Sent
	Err  error
}

var _ notification.Sender = (*Sender)(nil)

func (s *Sender) Send(ctx context.Context, kind notification.Kind, data notification.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Sent{Kind: kind, Data: data})
	return s.Err
}

// Count returns how many notifications of kind were attempted
func (s *Sender) Count(kind notification.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sent := range s.sent {
		if sent.Kind == kind {
			n++
		}
	}
	return n
}

// Records returns every attempted notification
func (s *Sender) Records() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sent(nil), s.sent...)
}

// SessionStore is an in-memory repositories.SessionRepo
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

var _ repositories.SessionRepo = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]models.Session)}
}

func (s *SessionStore) Get(ctx context.Context, deviceID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[deviceID]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.DeviceID] = *session
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, deviceID)
	return nil
}

// AuditStore is an in-memory audit trail
type AuditStore struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *AuditStore) Log(ctx context.Context, entry *audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *AuditStore) List(ctx context.Context, filter audit.Filter) (*audit.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter.Normalize()

	var matched []audit.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		matched = append(matched, e)
	}

	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return audit.NewPage(matched[start:end], int64(len(matched)), filter), nil
}
