package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

// customerProfile resolves a customer from email, customer_id or fuzzy name,
// in that priority order, and returns the full profile.
func (g *Gateway) customerProfile(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	var (
		customer catalog.Customer
		err      error
	)
	switch {
	case hasStringArg(args, "email"):
		email, _ := stringArg(args, "email")
		customer, err = g.store.CustomerByEmail(ctx, email)
	case hasStringArg(args, "customer_id"):
		customerID, _ := stringArg(args, "customer_id")
		customer, err = g.store.CustomerByID(ctx, customerID)
	case hasStringArg(args, "name"):
		name, _ := stringArg(args, "name")
		var found bool
		customer, found, err = g.customerByName(ctx, name)
		if err == nil && !found {
			return errResult(ToolCustomerProfile, "Customer not found"), nil
		}
	default:
		return errResult(ToolCustomerProfile, "Provide either email, customer_id or name"), nil
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return errResult(ToolCustomerProfile, "Customer not found"), nil
		}
		return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
	}
	return contractx.ToolResult{Tool: ToolCustomerProfile, Result: customer}, nil
}

// customerByName resolves a free-text name in two hops: an exact
// (case-insensitive) full-name match first, then a substring match. When
// several customers match the same query, the first dataset match wins.
func (g *Gateway) customerByName(ctx context.Context, name string) (catalog.Customer, bool, error) {
	candidates, err := g.store.SearchCustomers(ctx, strings.TrimSpace(name))
	if err != nil {
		return catalog.Customer{}, false, err
	}
	if len(candidates) == 0 {
		return catalog.Customer{}, false, nil
	}
	for _, c := range candidates {
		if strings.EqualFold(c.FullName, strings.TrimSpace(name)) {
			return c, true, nil
		}
	}
	return candidates[0], true, nil
}
