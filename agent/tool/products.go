package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/catalog"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
)

// ProductSummary is the compact product view list-shaped tools return.
// DiscountPercentage is nil for undiscounted products.
type ProductSummary struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	OriginalPrice      float64  `json:"original_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	Rating             float64  `json:"rating"`
	ReviewCount        int      `json:"review_count"`
	InStock            bool     `json:"in_stock"`
	Brand              string   `json:"brand"`
	Tags               []string `json:"tags"`
}

func summarize(p catalog.Product) ProductSummary {
	s := ProductSummary{
		ID:            p.ID,
		Name:          p.Name,
		Category:      string(p.Category),
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		InStock:       p.InStock,
		Brand:         p.Brand,
		Tags:          p.Tags,
	}
	if pct, ok := p.DiscountPercentage(); ok {
		s.DiscountPercentage = &pct
	}
	return s
}

func summarizeAll(products []catalog.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, summarize(p))
	}
	return out
}

type SearchProductsOutput struct {
	Products []ProductSummary `json:"products"`
	Total    int              `json:"total"`
	Query    string           `json:"query"`
}

func (g *Gateway) searchProducts(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	query, ok := stringArg(args, "query")
	if !ok {
		return errResult(ToolSearchProducts, "query is required"), nil
	}

	results, err := g.store.SearchProducts(ctx, query)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
	}

	if category, ok := stringArg(args, "category"); ok && category != "" {
		results = filterProducts(results, func(p catalog.Product) bool {
			return string(p.Category) == category
		})
	}
	if maxPrice, ok := floatArg(args, "max_price"); ok && maxPrice > 0 {
		results = filterProducts(results, func(p catalog.Product) bool {
			return p.Price <= maxPrice
		})
	}
	if minRating, ok := floatArg(args, "min_rating"); ok && minRating > 0 {
		results = filterProducts(results, func(p catalog.Product) bool {
			return p.Rating >= minRating
		})
	}
	if inStockOnly, ok := boolArg(args, "in_stock_only"); ok && inStockOnly {
		results = filterProducts(results, func(p catalog.Product) bool {
			return p.InStock
		})
	}

	return contractx.ToolResult{
		Tool: ToolSearchProducts,
		Result: SearchProductsOutput{
			Products: summarizeAll(results),
			Total:    len(results),
			Query:    query,
		},
	}, nil
}

func filterProducts(products []catalog.Product, keep func(catalog.Product) bool) []catalog.Product {
	out := products[:0]
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (g *Gateway) productDetails(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	productID, ok := stringArg(args, "product_id")
	if !ok {
		return errResult(ToolProductDetails, "product_id is required"), nil
	}

	product, err := g.store.ProductByID(ctx, productID)
	if err != nil {
		return storeErr(ToolProductDetails, err, fmt.Sprintf("Product %s not found", productID))
	}
	return contractx.ToolResult{Tool: ToolProductDetails, Result: product}, nil
}

type CategoryProductsOutput struct {
	Products []ProductSummary `json:"products"`
	Category string           `json:"category"`
}

func (g *Gateway) productsByCategory(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	raw, ok := stringArg(args, "category")
	if !ok {
		return errResult(ToolProductsByCategory, "category is required"), nil
	}
	category, ok := catalog.ParseCategory(raw)
	if !ok {
		return errResult(ToolProductsByCategory, fmt.Sprintf("Unknown category: %s", raw)), nil
	}

	products, err := g.store.ProductsByCategory(ctx, category)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
	}
	return contractx.ToolResult{
		Tool: ToolProductsByCategory,
		Result: CategoryProductsOutput{
			Products: summarizeAll(products),
			Category: raw,
		},
	}, nil
}

type AvailabilityOutput struct {
	ProductID          string   `json:"product_id"`
	Name               string   `json:"name"`
	InStock            bool     `json:"in_stock"`
	StockCount         int      `json:"stock_count"`
	Price              float64  `json:"price"`
	OriginalPrice      float64  `json:"original_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

func (g *Gateway) productAvailability(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	productID, ok := stringArg(args, "product_id")
	if !ok {
		return errResult(ToolProductAvailability, "product_id is required"), nil
	}

	product, err := g.store.ProductByID(ctx, productID)
	if err != nil {
		return storeErr(ToolProductAvailability, err, fmt.Sprintf("Product %s not found", productID))
	}

	out := AvailabilityOutput{
		ProductID:     product.ID,
		Name:          product.Name,
		InStock:       product.InStock,
		StockCount:    product.Stock,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
	}
	if pct, ok := product.DiscountPercentage(); ok {
		out.DiscountPercentage = &pct
	}
	return contractx.ToolResult{Tool: ToolProductAvailability, Result: out}, nil
}

type RecommendationsOutput struct {
	Recommendations []ProductSummary `json:"recommendations"`
}

const defaultRecommendationLimit = 4

// recommendations prefers a related-products view around product_id, then a
// top-rated view of category, then top rated overall. An unknown product or
// category falls through to the next strategy instead of failing.
func (g *Gateway) recommendations(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	limit := defaultRecommendationLimit
	if n, ok := intArg(args, "limit"); ok {
		limit = n
	}
	if limit < 0 {
		limit = 0
	}

	if productID, ok := stringArg(args, "product_id"); ok && productID != "" {
		base, err := g.store.ProductByID(ctx, productID)
		if err == nil {
			all, err := g.store.AllProducts(ctx)
			if err != nil {
				return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
			}
			related := filterProducts(all, func(p catalog.Product) bool {
				return p.ID != base.ID && (p.Category == base.Category || sharesTag(p.Tags, base.Tags))
			})
			return recommendationResult(related, limit), nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
		}
	}

	if raw, ok := stringArg(args, "category"); ok && raw != "" {
		if category, ok := catalog.ParseCategory(raw); ok {
			products, err := g.store.ProductsByCategory(ctx, category)
			if err != nil {
				return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
			}
			return recommendationResult(products, limit), nil
		}
	}

	all, err := g.store.AllProducts(ctx)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
	}
	return recommendationResult(all, limit), nil
}

func recommendationResult(products []catalog.Product, limit int) contractx.ToolResult {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating > products[j].Rating
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return contractx.ToolResult{
		Tool:   ToolRecommendations,
		Result: RecommendationsOutput{Recommendations: summarizeAll(products)},
	}
}

func sharesTag(tags, baseTags []string) bool {
	for _, t := range tags {
		for _, b := range baseTags {
			if t == b {
				return true
			}
		}
	}
	return false
}

type CompareProductsOutput struct {
	Products  []ProductSummary `json:"products"`
	Cheapest  string           `json:"cheapest"`
	BestRated string           `json:"best_rated"`
	NotFound  []string         `json:"not_found,omitempty"`
}

const maxCompareProducts = 4

func (g *Gateway) compareProducts(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	entries, ok := stringsArg(args, "product_ids")
	if !ok || len(entries) < 2 {
		return errResult(ToolCompareProducts, "provide at least two product ids or names"), nil
	}
	if len(entries) > maxCompareProducts {
		return errResult(ToolCompareProducts, fmt.Sprintf("compare at most %d products at once", maxCompareProducts)), nil
	}

	var (
		found    []catalog.Product
		seen     = make(map[string]bool, len(entries))
		notFound []string
	)
	for _, entry := range entries {
		p, err := g.resolveProduct(ctx, entry)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				notFound = append(notFound, entry)
				continue
			}
			return contractx.ToolResult{}, fmt.Errorf("%w: %v", contractx.ErrToolInvocation, err)
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		found = append(found, p)
	}
	if len(found) < 2 {
		return errResult(ToolCompareProducts, "not enough products found to compare"), nil
	}

	cheapest, bestRated := found[0], found[0]
	for _, p := range found[1:] {
		if p.Price < cheapest.Price {
			cheapest = p
		}
		if p.Rating > bestRated.Rating {
			bestRated = p
		}
	}

	return contractx.ToolResult{
		Tool: ToolCompareProducts,
		Result: CompareProductsOutput{
			Products:  summarizeAll(found),
			Cheapest:  cheapest.ID,
			BestRated: bestRated.ID,
			NotFound:  notFound,
		},
	}, nil
}

// resolveProduct accepts either a product ID or a product name. Name lookups
// reuse the catalog search and take its first match, same tie-break as
// customer name resolution.
func (g *Gateway) resolveProduct(ctx context.Context, entry string) (catalog.Product, error) {
	p, err := g.store.ProductByID(ctx, entry)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return catalog.Product{}, err
	}

	matches, err := g.store.SearchProducts(ctx, entry)
	if err != nil {
		return catalog.Product{}, err
	}
	if len(matches) == 0 {
		return catalog.Product{}, fmt.Errorf("%w: product %s", catalog.ErrNotFound, entry)
	}
	return matches[0], nil
}
