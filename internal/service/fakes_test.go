package service

import (
	"context"
	"sort"
	"sync"

	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/repository/contract"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/events"
	"storefront-be/pkg/llm"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func nopLogger() logger.ILogger {
	return logger.NewZapLoggerFrom(zap.NewNop())
}

// storeState is everything the fake database holds. Slices keep insertion order.
type storeState struct {
	categories []*entity.Category
	products   []*entity.Product
	cart       []*entity.CartItem
	orders     []*entity.Order
	orderItems []*entity.OrderItem
	chat       []*entity.ChatMessage
}

func (s storeState) clone() storeState {
	out := s
	out.cart = make([]*entity.CartItem, len(s.cart))
	for i, c := range s.cart {
		cp := *c
		out.cart[i] = &cp
	}
	out.orders = append([]*entity.Order(nil), s.orders...)
	out.orderItems = append([]*entity.OrderItem(nil), s.orderItems...)
	out.chat = append([]*entity.ChatMessage(nil), s.chat...)
	return out
}

// fakeStore is an in-memory stand-in for Postgres shared by every unit of work it creates.
// Keys of fail are "<table>.<operation>", e.g. "order_items.create".
type fakeStore struct {
	mu         sync.Mutex
	state      storeState
	fail       map[string]error
	calls      map[string]int
	cartWrites int
	// hooks run with the store locked, right after the named call is counted.
	hooks map[string]func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		fail:  map[string]error{},
		calls: map[string]int{},
		hooks: map[string]func(){},
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: s}
}

func (s *fakeStore) call(key string) error {
	s.calls[key]++
	if hook := s.hooks[key]; hook != nil {
		hook()
	}
	return s.fail[key]
}

func (s *fakeStore) productByID(id uuid.UUID) *entity.Product {
	for _, p := range s.state.products {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (s *fakeStore) addProduct(price string, stock int) *entity.Product {
	p := &entity.Product{Id: uuid.New(), Name: "Product " + price, Price: mustDecimal(price), Stock: stock}
	s.state.products = append(s.state.products, p)
	return p
}

func (s *fakeStore) addCartLine(sessionId uuid.UUID, product *entity.Product, qty int) *entity.CartItem {
	item := &entity.CartItem{Id: uuid.New(), UserId: sessionId, ProductId: product.Id, Quantity: qty}
	s.state.cart = append(s.state.cart, item)
	return item
}

func (s *fakeStore) cartOf(sessionId uuid.UUID) []*entity.CartItem {
	var out []*entity.CartItem
	for _, c := range s.state.cart {
		if c.UserId == sessionId {
			out = append(out, c)
		}
	}
	return out
}

type fakeUoW struct {
	store    *fakeStore
	snapshot *storeState
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.state.clone()
	u.snapshot = &snap
	return u.store.call("tx.begin")
}

func (u *fakeUoW) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if err := u.store.call("tx.commit"); err != nil {
		return err
	}
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.snapshot != nil {
		u.store.state = *u.snapshot
		u.snapshot = nil
	}
	return nil
}

func (u *fakeUoW) CategoryRepository() contract.CategoryRepository {
	return &fakeCategoryRepo{store: u.store}
}

func (u *fakeUoW) ProductRepository() contract.ProductRepository {
	return &fakeProductRepo{store: u.store}
}

func (u *fakeUoW) CartItemRepository() contract.CartItemRepository {
	return &fakeCartRepo{store: u.store}
}

func (u *fakeUoW) OrderRepository() contract.OrderRepository {
	return &fakeOrderRepo{store: u.store}
}

func (u *fakeUoW) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatRepo{store: u.store}
}

// specFilter pulls the criteria the fakes understand out of a spec list.
type specFilter struct {
	id        *uuid.UUID
	sessionId *uuid.UUID
	orderId   *uuid.UUID
	orderBy   string
	desc      bool
}

func parseSpecs(specs []specification.Specification) specFilter {
	var f specFilter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.OwnedBySession:
			id := s.SessionID
			f.sessionId = &id
		case specification.ByOrderID:
			id := s.OrderID
			f.orderId = &id
		case specification.OrderBy:
			if f.orderBy == "" {
				f.orderBy = s.Field
			}
			f.desc = s.Desc
		}
	}
	return f
}

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.state.categories = append(r.store.state.categories, c)
	return nil
}

func (r *fakeCategoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("categories.find"); err != nil {
		return nil, err
	}
	f := parseSpecs(specs)
	var out []*entity.Category
	for _, c := range r.store.state.categories {
		if f.id != nil && c.Id != *f.id {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.state.products = append(r.store.state.products, p)
	return nil
}

func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("products.find"); err != nil {
		return nil, err
	}
	f := parseSpecs(specs)
	var out []*entity.Product
	for _, p := range r.store.state.products {
		if f.id != nil && p.Id != *f.id {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeCartRepo struct{ store *fakeStore }

func (r *fakeCartRepo) AddOrIncrement(ctx context.Context, item *entity.CartItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.upsert"); err != nil {
		return err
	}
	r.store.cartWrites++
	for _, c := range r.store.state.cart {
		if c.UserId == item.UserId && c.ProductId == item.ProductId {
			c.Quantity += item.Quantity
			*item = *c
			return nil
		}
	}
	stored := *item
	stored.Product = nil
	r.store.state.cart = append(r.store.state.cart, &stored)
	return nil
}

func (r *fakeCartRepo) UpdateQuantity(ctx context.Context, sessionId, id uuid.UUID, quantity int) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.update"); err != nil {
		return 0, err
	}
	r.store.cartWrites++
	for _, c := range r.store.state.cart {
		if c.Id == id && c.UserId == sessionId {
			c.Quantity = quantity
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, sessionId, id uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.delete"); err != nil {
		return 0, err
	}
	r.store.cartWrites++
	for i, c := range r.store.state.cart {
		if c.Id == id && c.UserId == sessionId {
			r.store.state.cart = append(r.store.state.cart[:i], r.store.state.cart[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeCartRepo) DeleteLines(ctx context.Context, sessionId uuid.UUID, ids []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.delete_lines"); err != nil {
		return err
	}
	r.store.cartWrites++
	remove := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	kept := r.store.state.cart[:0:0]
	for _, c := range r.store.state.cart {
		if c.UserId == sessionId && remove[c.Id] {
			continue
		}
		kept = append(kept, c)
	}
	r.store.state.cart = kept
	return nil
}

func (r *fakeCartRepo) DeleteAllBySession(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.delete_all"); err != nil {
		return err
	}
	r.store.cartWrites++
	kept := r.store.state.cart[:0:0]
	for _, c := range r.store.state.cart {
		if c.UserId != sessionId {
			kept = append(kept, c)
		}
	}
	r.store.state.cart = kept
	return nil
}

// FindAll returns copies joined with their product, like the preloaded query.
func (r *fakeCartRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("cart_items.find"); err != nil {
		return nil, err
	}
	f := parseSpecs(specs)
	var out []*entity.CartItem
	for _, c := range r.store.state.cart {
		if f.id != nil && c.Id != *f.id {
			continue
		}
		if f.sessionId != nil && c.UserId != *f.sessionId {
			continue
		}
		cp := *c
		cp.Product = r.store.productByID(c.ProductId)
		out = append(out, &cp)
	}
	return out, nil
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("orders.create"); err != nil {
		return err
	}
	stored := *order
	stored.Items = nil
	r.store.state.orders = append(r.store.state.orders, &stored)
	return nil
}

func (r *fakeOrderRepo) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("order_items.create"); err != nil {
		return err
	}
	r.store.state.orderItems = append(r.store.state.orderItems, items...)
	return nil
}

func (r *fakeOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("orders.find"); err != nil {
		return nil, err
	}
	f := parseSpecs(specs)
	var out []*entity.Order
	for _, o := range r.store.state.orders {
		if f.id != nil && o.Id != *f.id {
			continue
		}
		if f.sessionId != nil && o.UserId != *f.sessionId {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	if f.desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindItems(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("order_items.find"); err != nil {
		return nil, err
	}
	f := parseSpecs(specs)
	var out []*entity.OrderItem
	for _, item := range r.store.state.orderItems {
		if f.orderId != nil && item.OrderId != *f.orderId {
			continue
		}
		out = append(out, item)
	}
	if f.orderBy == "created_at" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out, nil
}

type fakeChatRepo struct{ store *fakeStore }

func (r *fakeChatRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("chat_messages.create." + m.Role); err != nil {
		return err
	}
	r.store.state.chat = append(r.store.state.chat, m)
	return nil
}

func (r *fakeChatRepo) FindTranscript(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.call("chat_messages.find"); err != nil {
		return nil, err
	}
	var out []*entity.ChatMessage
	for _, m := range r.store.state.chat {
		if m.UserId == sessionId {
			out = append(out, m)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]*dto.CartResponse
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{carts: map[uuid.UUID][]*dto.CartResponse{}}
}

func (n *recordingNotifier) NotifyCartUpdated(sessionId uuid.UUID, cart *dto.CartResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.carts[sessionId] = append(n.carts[sessionId], cart)
}

func (n *recordingNotifier) count(sessionId uuid.UUID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.carts[sessionId])
}

type recordingEventPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingEventPublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingEventPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type recordingJobPublisher struct {
	payloads [][]byte
}

func (p *recordingJobPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type stubLLM struct {
	reply   string
	err     error
	history []llm.Message
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.history = append([]llm.Message(nil), history...)
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
