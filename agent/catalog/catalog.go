// Package catalog holds the e-commerce domain model (products, orders,
// customers) and the Store implementations the tool gateway reads from.
package catalog

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrNotFound = errors.New("catalog record not found")

// Category is a product category slug.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategorySports      Category = "sports"
	CategoryBeauty      Category = "beauty"
	CategoryToys        Category = "toys"
	CategoryFood        Category = "food"
)

// Categories lists every valid category slug.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothing,
		CategoryBooks,
		CategoryHome,
		CategorySports,
		CategoryBeauty,
		CategoryToys,
		CategoryFood,
	}
}

// ParseCategory validates a category slug.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// Cancellable reports whether an order in this status may still be cancelled.
// Once fulfilment starts (processing and later) cancellation is refused.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

type Review struct {
	ReviewerName     string  `json:"reviewer_name"`
	Rating           float64 `json:"rating"`
	Comment          string  `json:"comment"`
	VerifiedPurchase bool    `json:"verified_purchase"`
	Date             string  `json:"date"`
}

type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       Category          `json:"category"`
	Price          float64           `json:"price"`
	OriginalPrice  float64           `json:"original_price,omitempty"`
	Stock          int               `json:"stock"`
	Brand          string            `json:"brand"`
	SKU            string            `json:"sku"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"review_count"`
	Reviews        []Review          `json:"reviews,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	InStock        bool              `json:"in_stock"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// DiscountPercentage returns the discount against the original price,
// rounded to one decimal. ok is false when the product is not discounted.
func (p Product) DiscountPercentage() (float64, bool) {
	if p.OriginalPrice <= p.Price {
		return 0, false
	}
	pct := (1 - p.Price/p.OriginalPrice) * 100
	return math.Round(pct*10) / 10, true
}

func (p Product) clone() Product {
	out := p
	out.Reviews = append([]Review(nil), p.Reviews...)
	out.Tags = append([]string(nil), p.Tags...)
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	return out
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type TrackingEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

type Order struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	CustomerEmail     string          `json:"customer_email"`
	Items             []OrderItem     `json:"items"`
	Status            OrderStatus     `json:"status"`
	ShippingAddress   ShippingAddress `json:"shipping_address"`
	Subtotal          float64         `json:"subtotal"`
	ShippingCost      float64         `json:"shipping_cost"`
	Tax               float64         `json:"tax"`
	Total             float64         `json:"total"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	TrackingEvents    []TrackingEvent `json:"tracking_events,omitempty"`
	EstimatedDelivery string          `json:"estimated_delivery,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

func (o Order) clone() Order {
	out := o
	out.Items = append([]OrderItem(nil), o.Items...)
	out.TrackingEvents = append([]TrackingEvent(nil), o.TrackingEvents...)
	return out
}

type Customer struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	TotalOrders   int       `json:"total_orders"`
	TotalSpent    float64   `json:"total_spent"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

// CancelOutcome describes how a cancellation request was resolved.
type CancelOutcome int

const (
	// CancelApplied means the order was cancellable and is now cancelled.
	CancelApplied CancelOutcome = iota
	// CancelAlreadyCancelled means the order was cancelled before this
	// request. Repeated cancels resolve here, never as a rejection.
	CancelAlreadyCancelled
	// CancelRejected means fulfilment has progressed too far to cancel.
	CancelRejected
)

// Store is the read model the tool gateway dispatches against, plus the one
// write operation (order cancellation). List methods return records in
// dataset order; name and tag matching is case-insensitive substring.
type Store interface {
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	ProductByID(ctx context.Context, id string) (Product, error)
	ProductsByCategory(ctx context.Context, category Category) ([]Product, error)
	AllProducts(ctx context.Context) ([]Product, error)

	OrderByID(ctx context.Context, id string) (Order, error)
	OrdersByCustomerID(ctx context.Context, customerID string) ([]Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]Order, error)
	CancelOrder(ctx context.Context, orderID string) (Order, CancelOutcome, error)

	CustomerByID(ctx context.Context, id string) (Customer, error)
	CustomerByEmail(ctx context.Context, email string) (Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]Customer, error)
}
