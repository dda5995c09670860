package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps the catalog in Postgres via bun. Cancellation takes a
// row lock inside a transaction so concurrent cancels of the same order
// serialize; the second one observes the cancelled row and resolves as
// CancelAlreadyCancelled. The position column preserves dataset order, which
// list and search results follow.
type PostgresStore struct {
	db  *bun.DB
	now func() time.Time
}

type productRow struct {
	bun.BaseModel `bun:"table:catalog_products,alias:p"`

	ID             string            `bun:"id,pk"`
	Position       int               `bun:"position,notnull"`
	Name           string            `bun:"name,notnull"`
	Description    string            `bun:"description,notnull"`
	Category       Category          `bun:"category,notnull"`
	Price          float64           `bun:"price,notnull"`
	OriginalPrice  float64           `bun:"original_price"`
	Stock          int               `bun:"stock,notnull"`
	Brand          string            `bun:"brand,notnull"`
	SKU            string            `bun:"sku,notnull"`
	Rating         float64           `bun:"rating"`
	ReviewCount    int               `bun:"review_count"`
	Reviews        []Review          `bun:"reviews,type:jsonb"`
	Tags           []string          `bun:"tags,type:jsonb"`
	ImageURL       string            `bun:"image_url"`
	InStock        bool              `bun:"in_stock"`
	Specifications map[string]string `bun:"specifications,type:jsonb"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:catalog_orders,alias:o"`

	ID                string          `bun:"id,pk"`
	Position          int             `bun:"position,notnull"`
	CustomerID        string          `bun:"customer_id,notnull"`
	CustomerEmail     string          `bun:"customer_email,notnull"`
	Items             []OrderItem     `bun:"items,type:jsonb"`
	Status            OrderStatus     `bun:"status,notnull"`
	ShippingAddress   ShippingAddress `bun:"shipping_address,type:jsonb"`
	Subtotal          float64         `bun:"subtotal"`
	ShippingCost      float64         `bun:"shipping_cost"`
	Tax               float64         `bun:"tax"`
	Total             float64         `bun:"total"`
	CreatedAt         time.Time       `bun:"created_at,notnull"`
	UpdatedAt         time.Time       `bun:"updated_at,notnull"`
	TrackingNumber    string          `bun:"tracking_number"`
	TrackingEvents    []TrackingEvent `bun:"tracking_events,type:jsonb"`
	EstimatedDelivery string          `bun:"estimated_delivery"`
	Notes             string          `bun:"notes"`
}

type customerRow struct {
	bun.BaseModel `bun:"table:catalog_customers,alias:c"`

	ID            string    `bun:"id,pk"`
	Position      int       `bun:"position,notnull"`
	Email         string    `bun:"email,notnull"`
	FullName      string    `bun:"full_name,notnull"`
	Phone         string    `bun:"phone"`
	TotalOrders   int       `bun:"total_orders"`
	TotalSpent    float64   `bun:"total_spent"`
	LoyaltyPoints int       `bun:"loyalty_points"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("catalog: postgres dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &PostgresStore{
		db:  bun.NewDB(sqldb, pgdialect.New()),
		now: time.Now,
	}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Init creates the catalog tables when missing and loads the seed dataset
// into an empty database. Re-running against a populated database is a no-op.
func (s *PostgresStore) Init(ctx context.Context) error {
	for _, model := range []any{(*productRow)(nil), (*customerRow)(nil), (*orderRow)(nil)} {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("catalog: create table: %w", err)
		}
	}

	count, err := s.db.NewSelect().Model((*productRow)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("catalog: count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.seed(ctx)
}

func (s *PostgresStore) seed(ctx context.Context) error {
	var products []productRow
	for i, p := range SeedProducts() {
		products = append(products, productRowFrom(p, i))
	}
	var customers []customerRow
	for i, c := range SeedCustomers() {
		customers = append(customers, customerRow{
			ID:            c.ID,
			Position:      i,
			Email:         c.Email,
			FullName:      c.FullName,
			Phone:         c.Phone,
			TotalOrders:   c.TotalOrders,
			TotalSpent:    c.TotalSpent,
			LoyaltyPoints: c.LoyaltyPoints,
			CreatedAt:     c.CreatedAt,
		})
	}
	var orders []orderRow
	for i, o := range SeedOrders(s.now()) {
		orders = append(orders, orderRowFrom(o, i))
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&products).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("catalog: seed products: %w", err)
		}
		if _, err := tx.NewInsert().Model(&customers).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("catalog: seed customers: %w", err)
		}
		if _, err := tx.NewInsert().Model(&orders).On("CONFLICT (id) DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("catalog: seed orders: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	q := "%" + strings.ToLower(query) + "%"
	var rows []productRow
	err := s.db.NewSelect().Model(&rows).
		Where("lower(name) LIKE ?", q).
		WhereOr("lower(description) LIKE ?", q).
		WhereOr("lower(brand) LIKE ?", q).
		WhereOr("lower(tags::text) LIKE ?", q).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: search products: %w", err)
	}
	return productsFromRows(rows), nil
}

func (s *PostgresStore) ProductByID(ctx context.Context, id string) (Product, error) {
	row := new(productRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: load product: %w", err)
	}
	return row.toProduct(), nil
}

func (s *PostgresStore) ProductsByCategory(ctx context.Context, category Category) ([]Product, error) {
	var rows []productRow
	err := s.db.NewSelect().Model(&rows).
		Where("category = ?", category).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: products by category: %w", err)
	}
	return productsFromRows(rows), nil
}

func (s *PostgresStore) AllProducts(ctx context.Context) ([]Product, error) {
	var rows []productRow
	err := s.db.NewSelect().Model(&rows).Order("position ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return productsFromRows(rows), nil
}

func (s *PostgresStore) OrderByID(ctx context.Context, id string) (Order, error) {
	row := new(orderRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if err != nil {
		return Order{}, fmt.Errorf("catalog: load order: %w", err)
	}
	return row.toOrder(), nil
}

func (s *PostgresStore) OrdersByCustomerID(ctx context.Context, customerID string) ([]Order, error) {
	var rows []orderRow
	err := s.db.NewSelect().Model(&rows).
		Where("customer_id = ?", customerID).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: orders by customer: %w", err)
	}
	return ordersFromRows(rows), nil
}

func (s *PostgresStore) OrdersByEmail(ctx context.Context, email string) ([]Order, error) {
	var rows []orderRow
	err := s.db.NewSelect().Model(&rows).
		Where("lower(customer_email) = lower(?)", email).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: orders by email: %w", err)
	}
	return ordersFromRows(rows), nil
}

func (s *PostgresStore) CancelOrder(ctx context.Context, orderID string) (Order, CancelOutcome, error) {
	var (
		out     Order
		outcome CancelOutcome
	)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(orderRow)
		err := tx.NewSelect().Model(row).Where("id = ?", orderID).For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		if err != nil {
			return fmt.Errorf("catalog: load order: %w", err)
		}

		switch {
		case row.Status == OrderCancelled:
			outcome = CancelAlreadyCancelled
		case row.Status.Cancellable():
			row.Status = OrderCancelled
			row.UpdatedAt = s.now().UTC()
			if _, err := tx.NewUpdate().Model(row).Column("status", "updated_at").WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("catalog: cancel order: %w", err)
			}
			outcome = CancelApplied
		default:
			outcome = CancelRejected
		}
		out = row.toOrder()
		return nil
	})
	if err != nil {
		return Order{}, CancelRejected, err
	}
	return out, outcome, nil
}

func (s *PostgresStore) CustomerByID(ctx context.Context, id string) (Customer, error) {
	row := new(customerRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("catalog: load customer: %w", err)
	}
	return row.toCustomer(), nil
}

func (s *PostgresStore) CustomerByEmail(ctx context.Context, email string) (Customer, error) {
	row := new(customerRow)
	err := s.db.NewSelect().Model(row).Where("lower(email) = lower(?)", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, fmt.Errorf("%w: customer %s", ErrNotFound, email)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("catalog: load customer: %w", err)
	}
	return row.toCustomer(), nil
}

func (s *PostgresStore) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	q := "%" + strings.ToLower(query) + "%"
	var rows []customerRow
	err := s.db.NewSelect().Model(&rows).
		Where("lower(full_name) LIKE ?", q).
		WhereOr("lower(email) LIKE ?", q).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: search customers: %w", err)
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCustomer())
	}
	return out, nil
}

func productRowFrom(p Product, position int) productRow {
	return productRow{
		ID:             p.ID,
		Position:       position,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Stock:          p.Stock,
		Brand:          p.Brand,
		SKU:            p.SKU,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Reviews:        p.Reviews,
		Tags:           p.Tags,
		ImageURL:       p.ImageURL,
		InStock:        p.InStock,
		Specifications: p.Specifications,
	}
}

func (r productRow) toProduct() Product {
	return Product{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		Stock:          r.Stock,
		Brand:          r.Brand,
		SKU:            r.SKU,
		Rating:         r.Rating,
		ReviewCount:    r.ReviewCount,
		Reviews:        r.Reviews,
		Tags:           r.Tags,
		ImageURL:       r.ImageURL,
		InStock:        r.InStock,
		Specifications: r.Specifications,
	}
}

func productsFromRows(rows []productRow) []Product {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toProduct())
	}
	return out
}

func orderRowFrom(o Order, position int) orderRow {
	return orderRow{
		ID:                o.ID,
		Position:          position,
		CustomerID:        o.CustomerID,
		CustomerEmail:     o.CustomerEmail,
		Items:             o.Items,
		Status:            o.Status,
		ShippingAddress:   o.ShippingAddress,
		Subtotal:          o.Subtotal,
		ShippingCost:      o.ShippingCost,
		Tax:               o.Tax,
		Total:             o.Total,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		TrackingNumber:    o.TrackingNumber,
		TrackingEvents:    o.TrackingEvents,
		EstimatedDelivery: o.EstimatedDelivery,
		Notes:             o.Notes,
	}
}

func (r orderRow) toOrder() Order {
	return Order{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		CustomerEmail:     r.CustomerEmail,
		Items:             r.Items,
		Status:            r.Status,
		ShippingAddress:   r.ShippingAddress,
		Subtotal:          r.Subtotal,
		ShippingCost:      r.ShippingCost,
		Tax:               r.Tax,
		Total:             r.Total,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		TrackingNumber:    r.TrackingNumber,
		TrackingEvents:    r.TrackingEvents,
		EstimatedDelivery: r.EstimatedDelivery,
		Notes:             r.Notes,
	}
}

func ordersFromRows(rows []orderRow) []Order {
	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toOrder())
	}
	return out
}

func (r customerRow) toCustomer() Customer {
	return Customer{
		ID:            r.ID,
		Email:         r.Email,
		FullName:      r.FullName,
		Phone:         r.Phone,
		TotalOrders:   r.TotalOrders,
		TotalSpent:    r.TotalSpent,
		LoyaltyPoints: r.LoyaltyPoints,
		CreatedAt:     r.CreatedAt,
	}
}
