package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore serves the seeded demo dataset from process memory. Products
// and customers are immutable after construction; each order carries its own
// lock so a cancellation checks and writes the record atomically without
// blocking reads of other orders.
type MemoryStore struct {
	products    []Product
	productByID map[string]int
	customers   []Customer

	orders    []*orderRecord
	orderByID map[string]*orderRecord

	now func() time.Time
}

type orderRecord struct {
	mu    sync.Mutex
	order Order
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		products:    SeedProducts(),
		productByID: make(map[string]int),
		customers:   SeedCustomers(),
		orderByID:   make(map[string]*orderRecord),
		now:         time.Now,
	}
	for i, p := range s.products {
		s.productByID[p.ID] = i
	}
	for _, o := range SeedOrders(time.Now()) {
		rec := &orderRecord{order: o}
		s.orders = append(s.orders, rec)
		s.orderByID[o.ID] = rec
	}
	return s
}

func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]Product, error) {
	q := strings.ToLower(query)
	var out []Product
	for _, p := range s.products {
		if productMatches(p, q) {
			out = append(out, p.clone())
		}
	}
	return out, nil
}

func productMatches(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) ProductByID(_ context.Context, id string) (Product, error) {
	i, ok := s.productByID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return s.products[i].clone(), nil
}

func (s *MemoryStore) ProductsByCategory(_ context.Context, category Category) ([]Product, error) {
	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p.clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) AllProducts(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.clone())
	}
	return out, nil
}

func (s *MemoryStore) OrderByID(_ context.Context, id string) (Order, error) {
	rec, ok := s.orderByID[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.order.clone(), nil
}

func (s *MemoryStore) OrdersByCustomerID(_ context.Context, customerID string) ([]Order, error) {
	var out []Order
	for _, rec := range s.orders {
		rec.mu.Lock()
		if rec.order.CustomerID == customerID {
			out = append(out, rec.order.clone())
		}
		rec.mu.Unlock()
	}
	return out, nil
}

func (s *MemoryStore) OrdersByEmail(_ context.Context, email string) ([]Order, error) {
	q := strings.ToLower(email)
	var out []Order
	for _, rec := range s.orders {
		rec.mu.Lock()
		if strings.ToLower(rec.order.CustomerEmail) == q {
			out = append(out, rec.order.clone())
		}
		rec.mu.Unlock()
	}
	return out, nil
}

func (s *MemoryStore) CancelOrder(_ context.Context, orderID string) (Order, CancelOutcome, error) {
	rec, ok := s.orderByID[orderID]
	if !ok {
		return Order{}, CancelRejected, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	switch {
	case rec.order.Status == OrderCancelled:
		return rec.order.clone(), CancelAlreadyCancelled, nil
	case rec.order.Status.Cancellable():
		rec.order.Status = OrderCancelled
		rec.order.UpdatedAt = s.now().UTC()
		return rec.order.clone(), CancelApplied, nil
	default:
		return rec.order.clone(), CancelRejected, nil
	}
}

func (s *MemoryStore) CustomerByID(_ context.Context, id string) (Customer, error) {
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, id)
}

func (s *MemoryStore) CustomerByEmail(_ context.Context, email string) (Customer, error) {
	q := strings.ToLower(email)
	for _, c := range s.customers {
		if strings.ToLower(c.Email) == q {
			return c, nil
		}
	}
	return Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, email)
}

func (s *MemoryStore) SearchCustomers(_ context.Context, query string) ([]Customer, error) {
	q := strings.ToLower(query)
	var out []Customer
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.FullName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out, nil
}
