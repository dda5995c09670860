package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

const (
	ToolSearchProducts      = "search_products"
	ToolProductDetails      = "get_product_details"
	ToolProductsByCategory  = "get_products_by_category"
	ToolProductAvailability = "check_product_availability"
	ToolOrderStatus         = "get_order_status"
	ToolCustomerOrders      = "get_customer_orders"
	ToolCustomerProfile     = "get_customer_profile"
	ToolRecommendations     = "get_recommendations"
	ToolCancelOrder         = "cancel_order"
	ToolCompareProducts     = "compare_products"
)

// Names lists every gateway tool in registration order.
func Names() []string {
	return []string{
		ToolSearchProducts,
		ToolProductDetails,
		ToolProductsByCategory,
		ToolProductAvailability,
		ToolOrderStatus,
		ToolCustomerOrders,
		ToolCustomerProfile,
		ToolRecommendations,
		ToolCancelOrder,
		ToolCompareProducts,
	}
}

var _ contractx.ToolGateway = (*Gateway)(nil)

// Gateway dispatches tool invocations against the catalog store. Domain
// failures (missing records, refused cancellations, bad arguments) are
// reported inside ToolResult.Error so callers can feed them back to the
// model as data; the error return carries only invocation-level failures.
type Gateway struct {
	store catalog.Store
}

func NewGateway(store catalog.Store) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("tool: catalog store is required")
	}
	return &Gateway{store: store}, nil
}

func (g *Gateway) Invoke(ctx context.Context, req contractx.ToolRequest) (contractx.ToolResult, error) {
	log.Info().Str("tool", req.Tool).Interface("args", req.Args).Msg("tool called")

	out, err := g.dispatch(ctx, req.Tool, req.Args)
	if err != nil {
		log.Error().Str("tool", req.Tool).Err(err).Msg("tool error")
		return contractx.ToolResult{}, err
	}
	return out, nil
}

func (g *Gateway) dispatch(ctx context.Context, name string, args map[string]any) (contractx.ToolResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	switch name {
	case ToolSearchProducts:
		return g.searchProducts(ctx, args)
	case ToolProductDetails:
		return g.productDetails(ctx, args)
	case ToolProductsByCategory:
		return g.productsByCategory(ctx, args)
	case ToolProductAvailability:
		return g.productAvailability(ctx, args)
	case ToolOrderStatus:
		return g.orderStatus(ctx, args)
	case ToolCustomerOrders:
		return g.customerOrders(ctx, args)
	case ToolCustomerProfile:
		return g.customerProfile(ctx, args)
	case ToolRecommendations:
		return g.recommendations(ctx, args)
	case ToolCancelOrder:
		return g.cancelOrder(ctx, args)
	case ToolCompareProducts:
		return g.compareProducts(ctx, args)
	default:
		return contractx.ToolResult{}, fmt.Errorf("%w: %s", contractx.ErrUnknownTool, name)
	}
}

// errResult reports a domain-level failure as data.
func errResult(tool, msg string) contractx.ToolResult {
	return contractx.ToolResult{Tool: tool, Error: msg}
}

// storeErr maps catalog errors: a missing record stays a domain message,
// anything else is an invocation failure.
func storeErr(tool string, err error, notFoundMsg string) (contractx.ToolResult, error) {
	if errors.Is(err, catalog.ErrNotFound) {
		return errResult(tool, notFoundMsg), nil
	}
	return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
}
