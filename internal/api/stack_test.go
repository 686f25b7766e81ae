package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/api"
	"github.com/LeoR1u/ProyectoLegos/internal/api/handlers"
	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/config"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	repository "github.com/LeoR1u/ProyectoLegos/internal/repositories"
	service "github.com/LeoR1u/ProyectoLegos/internal/services"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/LeoR1u/ProyectoLegos/internal/ticket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memCache keeps JSON-encoded values like the redis adapter does.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet bool
}

func (c *memCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failSet {
		return errors.New("redis: connection refused")
	}

	c.data[key] = raw

	return nil
}

func (c *memCache) setFailing(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failSet = fail
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)

	return nil
}

func (c *memCache) Close() error { return nil }

type memProducts struct {
	products []*models.Product
}

func (p *memProducts) ListProducts(context.Context) ([]*models.Product, error) {
	return p.products, nil
}

func (p *memProducts) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	for _, product := range p.products {
		if product.ID == id {
			return product, nil
		}
	}

	return nil, fmt.Errorf("querying database: %w", sql.ErrNoRows)
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (u *memUsers) CreateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[user.Username]; ok {
		return repository.ErrDuplicateUsername
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	stored := *user
	u.users[user.Username] = &stored

	return nil
}

func (u *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.users[username]
	if !ok {
		return nil, fmt.Errorf("querying user: %w", sql.ErrNoRows)
	}

	found := *user

	return &found, nil
}

type memPendingCarts struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]models.LineItem
}

func (p *memPendingCarts) Upsert(_ context.Context, userID uuid.UUID, items []models.LineItem) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.carts[userID] = slices.Clone(items)

	return nil
}

func (p *memPendingCarts) Take(_ context.Context, userID uuid.UUID) ([]models.LineItem, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	items, ok := p.carts[userID]
	delete(p.carts, userID)

	return items, ok, nil
}

func (p *memPendingCarts) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.carts)
}

type memOrders struct {
	mu     sync.Mutex
	orders []*models.Order
	fail   bool
}

func (o *memOrders) CreateOrder(_ context.Context, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fail {
		return errors.New("insert order_items: connection reset")
	}

	order.ID = int64(len(o.orders) + 1)
	order.CreatedAt = time.Now()

	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}

	stored := *order
	stored.Lines = slices.Clone(order.Lines)
	o.orders = append(o.orders, &stored)

	return nil
}

func (o *memOrders) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, order := range o.orders {
		if order.ID == id {
			found := *order
			return &found, nil
		}
	}

	return nil, fmt.Errorf("failed to get the order: %w", sql.ErrNoRows)
}

func (o *memOrders) ListOrderSummaries(_ context.Context, userID uuid.UUID) ([]models.OrderSummary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	summaries := []models.OrderSummary{}

	for i := len(o.orders) - 1; i >= 0; i-- {
		order := o.orders[i]
		if order.UserID != userID {
			continue
		}

		parts := make([]string, 0, len(order.Lines))
		for _, line := range order.Lines {
			parts = append(parts, fmt.Sprintf("%s (%d)", line.ProductName, line.Quantity))
		}

		summaries = append(summaries, models.OrderSummary{
			OrderID:   order.ID,
			Total:     order.Total,
			CreatedAt: order.CreatedAt,
			Items:     strings.Join(parts, ", "),
		})
	}

	return summaries, nil
}

func (o *memOrders) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.orders)
}

func (o *memOrders) setFail(fail bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fail = fail
}

type allowAll struct{}

func (allowAll) CheckLoginRateLimit(context.Context, string) (bool, int, int, error) {
	return true, 5, 0, nil
}

func (allowAll) ResetLoginAttempts(context.Context, string) error { return nil }

// stack is the whole HTTP application over in-memory stores.
type stack struct {
	server   *httptest.Server
	cache    *memCache
	pending  *memPendingCarts
	orders   *memOrders
	products *memProducts
}

func newStack() *stack {
	s := &stack{
		cache:   &memCache{data: map[string][]byte{}},
		pending: &memPendingCarts{carts: map[uuid.UUID][]models.LineItem{}},
		orders:  &memOrders{},
		products: &memProducts{products: []*models.Product{
			{ID: 1, Name: "Brick", Price: decimal.RequireFromString("9.99"), Image: "/img/brick.jpg"},
			{ID: 2, Name: "Plate", Price: decimal.RequireFromString("5.00"), Image: "/img/plate.jpg"},
			{ID: 3, Name: "Minifig", Price: decimal.RequireFromString("4.99"), Image: "/img/minifig.jpg"},
		}},
	}

	users := &memUsers{users: map[string]*models.User{}}

	productService := service.NewProductService(s.products, s.cache, time.Minute)
	cartService := service.NewCartService(productService)
	userService := service.NewUserService(users, allowAll{})
	pendingCartService := service.NewPendingCartService(s.pending)
	orderService := service.NewOrderService(s.orders)

	manager := session.NewManager(
		session.NewStore(s.cache, time.Hour),
		[]byte("test-session-key"),
		config.Session{CookieName: "lego_sid", TTL: time.Hour},
		false,
	)

	router := api.NewRouter(api.RouterConfig{
		Handlers: api.Handlers{
			Product: handlers.NewProductHandler(productService),
			Cart:    handlers.NewCartHandler(cartService),
			User:    handlers.NewUserHandler(userService, pendingCartService),
			Order:   handlers.NewOrderHandler(orderService, ticket.NewPDFRenderer(), "LEGO STORE"),
		},
		Sessions:       middleware.NewSessionMiddleware(manager, session.NewLocker()),
		RequestTimeout: 5 * time.Second,
		ServiceName:    "lego-store-test",
	})

	s.server = httptest.NewServer(router)

	return s
}

func (s *stack) close() {
	s.server.Close()
}

// browser keeps cookies and does not follow redirects.
type browser struct {
	client *http.Client
	base   string
}

func (s *stack) newBrowser() *browser {
	jar, _ := cookiejar.New(nil)

	return &browser{
		base: s.server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type reply struct {
	status   int
	header   http.Header
	body     []byte
	location string
}

func (b *browser) do(method, path, body string) (*reply, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, b.base+path, reader)
	if err != nil {
		return nil, err
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &reply{
		status:   resp.StatusCode,
		header:   resp.Header,
		body:     data,
		location: resp.Header.Get("Location"),
	}, nil
}

func (b *browser) get(path string) (*reply, error) {
	return b.do(http.MethodGet, path, "")
}

func (b *browser) post(path, body string) (*reply, error) {
	return b.do(http.MethodPost, path, body)
}

// cartView fetches /cart and unwraps the envelope.
func (b *browser) cartView() (*models.CartView, error) {
	r, err := b.get("/cart")
	if err != nil {
		return nil, err
	}

	if r.status != http.StatusOK {
		return nil, fmt.Errorf("GET /cart returned %d: %s", r.status, r.body)
	}

	var envelope struct {
		Data models.CartView `json:"data"`
	}
	if err := json.Unmarshal(r.body, &envelope); err != nil {
		return nil, err
	}

	return &envelope.Data, nil
}

func (b *browser) register(username, password string) error {
	r, err := b.post("/register", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if err != nil {
		return err
	}

	if r.status != http.StatusSeeOther {
		return fmt.Errorf("register returned %d: %s", r.status, r.body)
	}

	return nil
}

func (b *browser) login(username, password string) error {
	r, err := b.post("/login", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if err != nil {
		return err
	}

	if r.status != http.StatusSeeOther || r.location != "/" {
		return fmt.Errorf("login returned %d: %s", r.status, r.body)
	}

	return nil
}

func (b *browser) addToCart(productID int64) (*models.CartResult, error) {
	r, err := b.post("/add-to-cart", fmt.Sprintf(`{"product_id":%d}`, productID))
	if err != nil {
		return nil, err
	}

	if r.status != http.StatusOK {
		return nil, fmt.Errorf("add-to-cart returned %d: %s", r.status, r.body)
	}

	var result models.CartResult

	return &result, json.Unmarshal(r.body, &result)
}
