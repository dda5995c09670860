// Package registry holds the static specialist directory: which specialists
// exist, which intents route to them and which gateway tools they may use.
// Loaded once at process start and read-only afterwards.
package registry

import (
	"errors"
	"fmt"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	toolx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/tool"
)

// Intent tags the orchestrator's classifier produces.
const (
	IntentProduct        = "product"
	IntentAvailability   = "availability"
	IntentRecommendation = "recommendation"
	IntentOrder          = "order"
	IntentCancellation   = "cancellation"
	IntentCustomer       = "customer"
	IntentComparison     = "comparison"
	IntentDeal           = "deal"
)

var _ contractx.Directory = (*Registry)(nil)

type Registry struct {
	specialists []contractx.SpecialistDescriptor
}

func New(specialists ...contractx.SpecialistDescriptor) (*Registry, error) {
	if len(specialists) == 0 {
		return nil, errors.New("registry: at least one specialist is required")
	}
	seen := make(map[string]bool, len(specialists))
	for _, sp := range specialists {
		switch {
		case sp.ID == "":
			return nil, errors.New("registry: specialist id is required")
		case sp.Endpoint == "":
			return nil, fmt.Errorf("registry: specialist %s has no endpoint", sp.ID)
		case len(sp.Intents) == 0:
			return nil, fmt.Errorf("registry: specialist %s supports no intents", sp.ID)
		case seen[sp.ID]:
			return nil, fmt.Errorf("registry: duplicate specialist id %s", sp.ID)
		}
		seen[sp.ID] = true
	}
	return &Registry{
		specialists: append([]contractx.SpecialistDescriptor(nil), specialists...),
	}, nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []contractx.SpecialistDescriptor {
	return append([]contractx.SpecialistDescriptor(nil), r.specialists...)
}

// Resolve returns every specialist supporting the intent, in registration
// order. No match wraps ErrUnknownSpecialist; the orchestrator treats that
// as a routing outcome, not a failure.
func (r *Registry) Resolve(intent string) ([]contractx.SpecialistDescriptor, error) {
	var out []contractx.SpecialistDescriptor
	for _, sp := range r.specialists {
		for _, supported := range sp.Intents {
			if supported == intent {
				out = append(out, sp)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: intent=%s", contractx.ErrUnknownSpecialist, intent)
	}
	return out, nil
}

// Default returns the built-in specialist directory. Endpoints are logical
// names the in-process transport binds runtimes to; a distributed deployment
// swaps these descriptors for ones discovered via agent cards.
func Default() []contractx.SpecialistDescriptor {
	return []contractx.SpecialistDescriptor{
		{
			ID:          "product-agent",
			Type:        contractx.AgentTypeProduct,
			DisplayName: "Product Agent",
			Description: "E-ticaret ürün uzmanı. Ürün arama, detay, stok kontrolü ve öneri sorularını yanıtlar.",
			Endpoint:    "product-agent",
			Version:     "1.0.0",
			Intents:     []string{IntentProduct, IntentAvailability, IntentRecommendation},
			Capabilities: []string{
				"Ürün arama ve filtreleme",
				"Ürün detayları ve özellikler",
				"Stok ve fiyat kontrolü",
				"Ürün önerileri",
			},
			Tools: []string{
				toolx.ToolSearchProducts,
				toolx.ToolProductDetails,
				toolx.ToolProductsByCategory,
				toolx.ToolProductAvailability,
				toolx.ToolRecommendations,
			},
			Skills: []contractx.Skill{
				{
					ID:          "product_search",
					Name:        "Ürün Arama",
					Description: "Katalogda ürün ara ve filtrele",
					Tags:        []string{"ürün", "arama", "katalog"},
					Examples:    []string{"Kulaklık öner", "500 TL altı laptop var mı?"},
				},
				{
					ID:          "product_details",
					Name:        "Ürün Detayları",
					Description: "Ürün özellikleri, yorumlar ve stok bilgisi",
					Tags:        []string{"detay", "özellik", "yorum"},
					Examples:    []string{"prod-001 hakkında bilgi ver", "Sony WH-1000XM5 özellikleri nedir?"},
				},
				{
					ID:          "product_recommendations",
					Name:        "Ürün Önerisi",
					Description: "Kişiselleştirilmiş ürün önerileri",
					Tags:        []string{"öneri", "tavsiye", "benzer"},
					Examples:    []string{"Bana elektronik ürün öner", "Bu ürüne benzer neler var?"},
				},
			},
		},
		{
			ID:          "order-agent",
			Type:        contractx.AgentTypeOrder,
			DisplayName: "Order Agent",
			Description: "E-ticaret sipariş yönetimi uzmanı. Sipariş takibi, iptal/iade işlemleri ve müşteri hesap yönetimi.",
			Endpoint:    "order-agent",
			Version:     "1.0.0",
			Intents:     []string{IntentOrder, IntentCancellation, IntentCustomer},
			Capabilities: []string{
				"Sipariş durum takibi",
				"Kargo takip bilgisi",
				"Sipariş iptali",
				"Müşteri profili ve sadakat puanları",
				"Geçmiş siparişler",
			},
			Tools: []string{
				toolx.ToolOrderStatus,
				toolx.ToolCustomerOrders,
				toolx.ToolCustomerProfile,
				toolx.ToolCancelOrder,
			},
			Skills: []contractx.Skill{
				{
					ID:          "order_tracking",
					Name:        "Sipariş Takibi",
					Description: "Sipariş durumu ve kargo takip bilgisi",
					Tags:        []string{"sipariş", "takip", "kargo"},
					Examples:    []string{"ord-001 siparişim nerede?", "Kargo durumumu kontrol et"},
				},
				{
					ID:          "order_history",
					Name:        "Sipariş Geçmişi",
					Description: "Müşterinin tüm siparişlerini listele",
					Tags:        []string{"geçmiş", "siparişler", "liste"},
					Examples:    []string{"Tüm siparişlerimi göster", "Son siparişlerim neler?"},
				},
				{
					ID:          "order_cancellation",
					Name:        "Sipariş İptali",
					Description: "Uygun siparişleri iptal et ve iade başlat",
					Tags:        []string{"iptal", "iade", "cancel"},
					Examples:    []string{"Siparişimi iptal et", "ord-003 iptal edebilir miyim?"},
				},
				{
					ID:          "customer_profile",
					Name:        "Müşteri Profili",
					Description: "Hesap bilgileri ve sadakat puanları",
					Tags:        []string{"profil", "hesap", "puan"},
					Examples:    []string{"Kaç sadakat puanım var?", "Hesabım hakkında bilgi"},
				},
			},
		},
		{
			ID:          "search-agent",
			Type:        contractx.AgentTypeSearch,
			DisplayName: "Search Agent",
			Description: "Katalog araştırma uzmanı. Fiyat karşılaştırması, indirim avcılığı ve ürün incelemeleri.",
			Endpoint:    "search-agent",
			Version:     "1.0.0",
			Intents:     []string{IntentComparison, IntentDeal},
			Capabilities: []string{
				"Fiyat karşılaştırması",
				"İndirimli ürün analizi",
				"Ürün incelemeleri",
				"Trend ürün analizi",
			},
			Tools: []string{
				toolx.ToolSearchProducts,
				toolx.ToolCompareProducts,
				toolx.ToolProductDetails,
				toolx.ToolRecommendations,
			},
			Skills: []contractx.Skill{
				{
					ID:          "price_comparison",
					Name:        "Fiyat Karşılaştırması",
					Description: "Katalogdaki ürünlerin fiyat ve puanlarını karşılaştır",
					Tags:        []string{"fiyat", "karşılaştırma", "ucuz"},
					Examples:    []string{"prod-001 ile prod-006 karşılaştır", "En ucuz kulaklık hangisi?"},
				},
				{
					ID:          "deal_finding",
					Name:        "İndirim Avcılığı",
					Description: "Kategorideki en yüksek indirimli ürünleri bul",
					Tags:        []string{"indirim", "kampanya", "fırsat"},
					Examples:    []string{"Elektronikte en iyi fırsat ne?", "İndirimli süpürge var mı?"},
				},
				{
					ID:          "product_reviews",
					Name:        "Ürün İncelemeleri",
					Description: "Katalogdaki kullanıcı yorumlarını özetle",
					Tags:        []string{"yorum", "inceleme", "review"},
					Examples:    []string{"Dyson V15 yorumları", "Nike Air Max kullanıcı deneyimleri"},
				},
			},
		},
	}
}
