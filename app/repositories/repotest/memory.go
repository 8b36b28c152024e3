// Package repotest provides in-memory stand-ins for the Mongo repositories,
// used by service and resolver tests. They honour the same contracts: absent
// documents come back as (nil, nil) and unique emails yield ErrDuplicate.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/repositories"
)

// Stores bundles one fake per collection.
type Stores struct {
	Users    *Users
	Products *Products
	Clients  *Clients
	Orders   *Orders
}

// New returns empty stores wired together for the report lookups.
func New() *Stores {
	s := &Stores{
		Users:    &Users{docs: map[primitive.ObjectID]models.User{}},
		Products: &Products{docs: map[primitive.ObjectID]models.Product{}},
		Clients:  &Clients{docs: map[primitive.ObjectID]models.Client{}},
	}
	s.Orders = &Orders{docs: map[primitive.ObjectID]models.Order{}, users: s.Users, clients: s.Clients}
	return s
}

// ─── Users ────────────────────────────────────────────────────────────────────

type Users struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.User
	Err  error // returned by every call when set
}

func (u *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	if doc, ok := u.docs[id]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, doc := range u.docs {
		if doc.Email == email {
			return &doc, nil
		}
	}
	return nil, nil
}

func (u *Users) Create(_ context.Context, doc *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, d := range u.docs {
		if d.Email == doc.Email {
			return repositories.ErrDuplicate
		}
	}
	doc.ID = primitive.NewObjectID()
	u.docs[doc.ID] = *doc
	return nil
}

// ─── Products ─────────────────────────────────────────────────────────────────

type Products struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Product
	Err  error
}

func (p *Products) All(_ context.Context) ([]*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return sorted(p.docs, func(d models.Product) primitive.ObjectID { return d.ID }), nil
}

func (p *Products) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	if doc, ok := p.docs[id]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (p *Products) Create(_ context.Context, doc *models.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	doc.ID = primitive.NewObjectID()
	p.docs[doc.ID] = *doc
	return nil
}

func (p *Products) Update(_ context.Context, doc *models.Product) (*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	cur, ok := p.docs[doc.ID]
	if !ok {
		return nil, nil
	}
	cur.Name, cur.Stock, cur.Price = doc.Name, doc.Stock, doc.Price
	p.docs[doc.ID] = cur
	return &cur, nil
}

func (p *Products) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	_, ok := p.docs[id]
	delete(p.docs, id)
	return ok, nil
}

// Search matches any whitespace-separated term case-insensitively.
func (p *Products) Search(_ context.Context, query string) ([]*models.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}

	terms := strings.Fields(strings.ToLower(query))
	var out []*models.Product
	for _, doc := range sorted(p.docs, func(d models.Product) primitive.ObjectID { return d.ID }) {
		name := strings.ToLower(doc.Name)
		for _, term := range terms {
			if strings.Contains(name, term) {
				out = append(out, doc)
				break
			}
		}
		if len(out) == repositories.SearchLimit {
			break
		}
	}
	return out, nil
}

func (p *Products) Reserve(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	doc, ok := p.docs[id]
	if !ok || doc.Stock < qty {
		return false, nil
	}
	doc.Stock -= qty
	p.docs[id] = doc
	return true, nil
}

func (p *Products) Adjust(_ context.Context, id primitive.ObjectID, delta int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	if doc, ok := p.docs[id]; ok {
		doc.Stock += delta
		p.docs[id] = doc
	}
	return nil
}

// Stock is a test helper returning the current stock of id.
func (p *Products) Stock(id primitive.ObjectID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.docs[id].Stock
}

// ─── Clients ──────────────────────────────────────────────────────────────────

type Clients struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Client
	Err  error
}

func (c *Clients) FindByID(_ context.Context, id primitive.ObjectID) (*models.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	if doc, ok := c.docs[id]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (c *Clients) FindByEmail(_ context.Context, email string) (*models.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	for _, doc := range c.docs {
		if doc.Email == email {
			return &doc, nil
		}
	}
	return nil, nil
}

func (c *Clients) FindBySeller(_ context.Context, seller primitive.ObjectID) ([]*models.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := []*models.Client{}
	for _, doc := range sorted(c.docs, func(d models.Client) primitive.ObjectID { return d.ID }) {
		if doc.Seller == seller {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (c *Clients) Create(_ context.Context, doc *models.Client) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for _, d := range c.docs {
		if d.Email == doc.Email {
			return repositories.ErrDuplicate
		}
	}
	doc.ID = primitive.NewObjectID()
	c.docs[doc.ID] = *doc
	return nil
}

func (c *Clients) Update(_ context.Context, doc *models.Client) (*models.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	cur, ok := c.docs[doc.ID]
	if !ok {
		return nil, nil
	}
	for id, d := range c.docs {
		if id != doc.ID && d.Email == doc.Email {
			return nil, repositories.ErrDuplicate
		}
	}
	cur.Name, cur.Surname, cur.Email, cur.Company, cur.PhoneNumber = doc.Name, doc.Surname, doc.Email, doc.Company, doc.PhoneNumber
	c.docs[doc.ID] = cur
	return &cur, nil
}

func (c *Clients) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	_, ok := c.docs[id]
	delete(c.docs, id)
	return ok, nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

type Orders struct {
	mu      sync.Mutex
	docs    map[primitive.ObjectID]models.Order
	users   *Users
	clients *Clients
	Err     error
}

func (o *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	if doc, ok := o.docs[id]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (o *Orders) FindBySeller(ctx context.Context, seller primitive.ObjectID) ([]*models.Order, error) {
	return o.filter(func(d models.Order) bool { return d.Seller == seller })
}

func (o *Orders) FindBySellerAndStatus(_ context.Context, seller primitive.ObjectID, status models.OrderStatus) ([]*models.Order, error) {
	return o.filter(func(d models.Order) bool { return d.Seller == seller && d.Status == status })
}

func (o *Orders) filter(keep func(models.Order) bool) ([]*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	out := []*models.Order{}
	for _, doc := range sorted(o.docs, func(d models.Order) primitive.ObjectID { return d.ID }) {
		if keep(*doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (o *Orders) Create(_ context.Context, doc *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	doc.ID = primitive.NewObjectID()
	o.docs[doc.ID] = *doc
	return nil
}

func (o *Orders) Replace(_ context.Context, doc *models.Order) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	cur, ok := o.docs[doc.ID]
	if !ok {
		return nil, nil
	}
	cur.Items, cur.Client, cur.Status, cur.Total = doc.Items, doc.Client, doc.Status, doc.Total
	o.docs[doc.ID] = cur
	return &cur, nil
}

func (o *Orders) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return false, o.Err
	}
	_, ok := o.docs[id]
	delete(o.docs, id)
	return ok, nil
}

// completedTotals sums completed order totals per key.
func (o *Orders) completedTotals(key func(models.Order) primitive.ObjectID) (map[primitive.ObjectID]float64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return nil, o.Err
	}
	totals := map[primitive.ObjectID]float64{}
	for _, doc := range o.docs {
		if doc.Status == models.StatusCompleted {
			totals[key(doc)] += doc.Total
		}
	}
	return totals, nil
}

func (o *Orders) TopClients(ctx context.Context) ([]*models.TopClient, error) {
	totals, err := o.completedTotals(func(d models.Order) primitive.ObjectID { return d.Client })
	if err != nil {
		return nil, err
	}
	rows := []*models.TopClient{}
	for id, total := range totals {
		row := &models.TopClient{Total: total, Clients: []models.Client{}}
		if c, _ := o.clients.FindByID(ctx, id); c != nil {
			row.Clients = append(row.Clients, *c)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	if len(rows) > repositories.ReportLimit {
		rows = rows[:repositories.ReportLimit]
	}
	return rows, nil
}

func (o *Orders) TopSellers(ctx context.Context) ([]*models.TopSeller, error) {
	totals, err := o.completedTotals(func(d models.Order) primitive.ObjectID { return d.Seller })
	if err != nil {
		return nil, err
	}
	rows := []*models.TopSeller{}
	for id, total := range totals {
		row := &models.TopSeller{Total: total, Sellers: []models.User{}}
		if u, _ := o.users.FindByID(ctx, id); u != nil {
			row.Sellers = append(row.Sellers, *u)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	if len(rows) > repositories.ReportLimit {
		rows = rows[:repositories.ReportLimit]
	}
	return rows, nil
}

// sorted returns copies of docs ordered by id, which for fresh ObjectIDs is
// insertion order.
func sorted[T any](docs map[primitive.ObjectID]T, id func(T) primitive.ObjectID) []*T {
	out := make([]*T, 0, len(docs))
	for _, d := range docs {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := id(*out[i]), id(*out[j])
		return a.Hex() < b.Hex()
	})
	return out
}
