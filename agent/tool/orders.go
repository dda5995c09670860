package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

type OrderLine struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

type TrackingEventView struct {
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type OrderStatusOutput struct {
	OrderID           string              `json:"order_id"`
	Status            string              `json:"status"`
	TrackingNumber    string              `json:"tracking_number"`
	EstimatedDelivery string              `json:"estimated_delivery"`
	Items             []OrderLine         `json:"items"`
	Total             float64             `json:"total"`
	TrackingEvents    []TrackingEventView `json:"tracking_events"`
}

func (g *Gateway) orderStatus(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	orderID, ok := stringArg(args, "order_id")
	if !ok {
		return errResult(ToolOrderStatus, "order_id is required"), nil
	}

	order, err := g.store.OrderByID(ctx, orderID)
	if err != nil {
		return storeErr(ToolOrderStatus, err, fmt.Sprintf("Order %s not found", orderID))
	}

	out := OrderStatusOutput{
		OrderID:           order.ID,
		Status:            string(order.Status),
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
		Total:             order.Total,
		Items:             make([]OrderLine, 0, len(order.Items)),
		TrackingEvents:    make([]TrackingEventView, 0, len(order.TrackingEvents)),
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, OrderLine{Name: item.ProductName, Qty: item.Quantity})
	}
	for _, ev := range order.TrackingEvents {
		out.TrackingEvents = append(out.TrackingEvents, TrackingEventView{
			Timestamp:   ev.Timestamp.Format(time.RFC3339),
			Status:      ev.Status,
			Location:    ev.Location,
			Description: ev.Description,
		})
	}
	return contractx.ToolResult{Tool: ToolOrderStatus, Result: out}, nil
}

type OrderSummary struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	Total          float64 `json:"total"`
	ItemCount      int     `json:"item_count"`
	CreatedAt      string  `json:"created_at"`
	TrackingNumber string  `json:"tracking_number"`
}

type CustomerOrdersOutput struct {
	Orders []OrderSummary `json:"orders"`
	Total  int            `json:"total"`
}

// customerOrders resolves the customer from email, customer_id or fuzzy
// name, in that priority order, then lists their orders.
func (g *Gateway) customerOrders(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	var (
		orders []catalog.Order
		err    error
	)
	switch {
	case hasStringArg(args, "email"):
		email, _ := stringArg(args, "email")
		orders, err = g.store.OrdersByEmail(ctx, email)
	case hasStringArg(args, "customer_id"):
		customerID, _ := stringArg(args, "customer_id")
		orders, err = g.store.OrdersByCustomerID(ctx, customerID)
	case hasStringArg(args, "name"):
		name, _ := stringArg(args, "name")
		customer, found, lookupErr := g.customerByName(ctx, name)
		if lookupErr != nil {
			return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, lookupErr)
		}
		if !found {
			return errResult(ToolCustomerOrders, "Customer not found"), nil
		}
		orders, err = g.store.OrdersByCustomerID(ctx, customer.ID)
	default:
		return errResult(ToolCustomerOrders, "Provide either email, customer_id or name"), nil
	}
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
	}

	out := CustomerOrdersOutput{
		Orders: make([]OrderSummary, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		out.Orders = append(out.Orders, OrderSummary{
			ID:             o.ID,
			Status:         string(o.Status),
			Total:          o.Total,
			ItemCount:      len(o.Items),
			CreatedAt:      o.CreatedAt.Format(time.RFC3339),
			TrackingNumber: o.TrackingNumber,
		})
	}
	return contractx.ToolResult{Tool: ToolCustomerOrders, Result: out}, nil
}

type CancelOrderOutput struct {
	Success      bool    `json:"success"`
	OrderID      string  `json:"order_id"`
	Message      string  `json:"message"`
	RefundAmount float64 `json:"refund_amount"`
}

// cancelOrder is idempotent: repeating a cancel resolves as success again
// rather than tripping the not-cancellable path.
func (g *Gateway) cancelOrder(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	orderID, ok := stringArg(args, "order_id")
	if !ok {
		return errResult(ToolCancelOrder, "order_id is required"), nil
	}

	order, outcome, err := g.store.CancelOrder(ctx, orderID)
	if err != nil {
		return storeErr(ToolCancelOrder, err, fmt.Sprintf("Order %s not found", orderID))
	}

	switch outcome {
	case catalog.CancelApplied:
		return contractx.ToolResult{
			Tool: ToolCancelOrder,
			Result: CancelOrderOutput{
				Success:      true,
				OrderID:      order.ID,
				Message:      fmt.Sprintf("Order %s has been cancelled successfully. Refund will be processed in 3-5 business days.", order.ID),
				RefundAmount: order.Total,
			},
		}, nil
	case catalog.CancelAlreadyCancelled:
		return contractx.ToolResult{
			Tool: ToolCancelOrder,
			Result: CancelOrderOutput{
				Success:      true,
				OrderID:      order.ID,
				Message:      fmt.Sprintf("Order %s is already cancelled.", order.ID),
				RefundAmount: order.Total,
			},
		}, nil
	default:
		return errResult(ToolCancelOrder, fmt.Sprintf("Order cannot be cancelled. Current status: %s", order.Status)), nil
	}
}
