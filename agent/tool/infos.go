package tool

import (
	"github.com/cloudwego/eino/schema"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
)

// Infos returns the model-facing schemas for the named tools, in the given
// order. Each specialist binds only its own toolset.
func Infos(names ...string) []*schema.ToolInfo {
	all := toolInfoIndex()
	out := make([]*schema.ToolInfo, 0, len(names))
	for _, name := range names {
		if info, ok := all[name]; ok {
			out = append(out, info)
		}
	}
	return out
}

func categoryEnum() []string {
	categories := catalog.Categories()
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}

func toolInfoIndex() map[string]*schema.ToolInfo {
	return map[string]*schema.ToolInfo{
		ToolSearchProducts: {
			Name: ToolSearchProducts,
			Desc: "Search products by keyword in name, description, tags or brand",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query":         {Type: schema.String, Desc: "Search keyword", Required: true},
				"category":      {Type: schema.String, Desc: "Filter by category", Enum: categoryEnum()},
				"max_price":     {Type: schema.Number, Desc: "Maximum price filter"},
				"min_rating":    {Type: schema.Number, Desc: "Minimum rating filter (1-5)"},
				"in_stock_only": {Type: schema.Boolean, Desc: "Return only in-stock items"},
			}),
		},
		ToolProductDetails: {
			Name: ToolProductDetails,
			Desc: "Get full details of a product by ID including reviews and specifications",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Product ID (e.g. prod-001)", Required: true},
			}),
		},
		ToolProductsByCategory: {
			Name: ToolProductsByCategory,
			Desc: "List all products in a specific category",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"category": {Type: schema.String, Desc: "Category slug", Enum: categoryEnum(), Required: true},
			}),
		},
		ToolProductAvailability: {
			Name: ToolProductAvailability,
			Desc: "Check if a product is in stock and get current price",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Product ID", Required: true},
			}),
		},
		ToolOrderStatus: {
			Name: ToolOrderStatus,
			Desc: "Get current status and tracking info for an order",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {Type: schema.String, Desc: "Order ID (e.g. ord-001)", Required: true},
			}),
		},
		ToolCustomerOrders: {
			Name: ToolCustomerOrders,
			Desc: "Get all orders for a customer by email, customer ID or name",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"email":       {Type: schema.String, Desc: "Customer email"},
				"customer_id": {Type: schema.String, Desc: "Customer ID"},
				"name":        {Type: schema.String, Desc: "Customer full or partial name"},
			}),
		},
		ToolCustomerProfile: {
			Name: ToolCustomerProfile,
			Desc: "Get customer profile including loyalty points and order history",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"email":       {Type: schema.String, Desc: "Customer email"},
				"customer_id": {Type: schema.String, Desc: "Customer ID"},
				"name":        {Type: schema.String, Desc: "Customer full or partial name"},
			}),
		},
		ToolRecommendations: {
			Name: ToolRecommendations,
			Desc: "Get product recommendations based on a product or category",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.String, Desc: "Base product for recommendations"},
				"category":   {Type: schema.String, Desc: "Category for recommendations"},
				"limit":      {Type: schema.Integer, Desc: "Max number of recommendations"},
			}),
		},
		ToolCancelOrder: {
			Name: ToolCancelOrder,
			Desc: "Cancel a pending or confirmed order",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {Type: schema.String, Desc: "Order ID", Required: true},
				"reason":   {Type: schema.String, Desc: "Reason for cancellation"},
			}),
		},
		ToolCompareProducts: {
			Name: ToolCompareProducts,
			Desc: "Compare catalog products by price, rating and availability",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_ids": {
					Type:     schema.Array,
					Desc:     "Product IDs or names to compare, 2 to 4 entries",
					ElemInfo: &schema.ParameterInfo{Type: schema.String},
					Required: true,
				},
			}),
		},
	}
}
