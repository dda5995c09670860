package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	registryx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/registry"
)

type intentRule struct {
	intent   string
	keywords []string
}

// intentRules maps keyword families to intent tags. Table order decides
// delegation order when one message carries several intents. Keywords are
// matched against the normalized (lowercased) message, so Turkish and
// English phrasings both route.
var intentRules = []intentRule{
	{intent: registryx.IntentProduct, keywords: []string{
		"ürün", "urun", "kulaklık", "telefon", "laptop", "bilgisayar",
		"özellik", "ozellik", "fiyat", "kaç tl", "kaç para", "ne kadar",
		"product", "price", "feature", "spec",
	}},
	{intent: registryx.IntentAvailability, keywords: []string{
		"stok", "stokta", "mevcut mu", "var mı", "bulunur mu",
		"stock", "available", "availability", "in stock",
	}},
	{intent: registryx.IntentRecommendation, keywords: []string{
		"öner", "oner", "tavsiye", "hangisini al", "ne alsam",
		"recommend", "suggest", "suggestion",
	}},
	{intent: registryx.IntentOrder, keywords: []string{
		"sipariş", "siparis", "kargo", "teslimat", "takip", "nerede", "ord-",
		"order", "shipping", "delivery", "track",
	}},
	{intent: registryx.IntentCancellation, keywords: []string{
		"iptal", "iade", "geri ödeme", "geri odeme",
		"cancel", "refund", "return my",
	}},
	{intent: registryx.IntentCustomer, keywords: []string{
		"müşteri", "musteri", "hesabım", "hesabim", "profil", "sadakat", "puan",
		"customer", "account", "profile", "loyalty",
	}},
	{intent: registryx.IntentComparison, keywords: []string{
		"karşılaştır", "karsilastir", "kıyasla", "kiyasla", "hangisi daha",
		"arasındaki fark", "arasindaki fark", "inceleme", "yorum",
		"compare", "comparison", "versus", " vs ", "review",
	}},
	{intent: registryx.IntentDeal, keywords: []string{
		"indirim", "fırsat", "firsat", "kampanya", "en ucuz", "uygun fiyat",
		"deal", "discount", "sale", "cheapest",
	}},
}

func ClassifyIntents(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Intents = classifyIntents(in.Text)
	return in, nil
}

// classifyIntents returns the matched intent tags in table order. Zero
// matches is a valid outcome: the message needs no specialist.
func classifyIntents(text string) []string {
	normalized := normalizeMessage(text)

	var intents []string
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				intents = append(intents, rule.intent)
				break
			}
		}
	}
	return intents
}

// normalizeMessage lowercases the text for keyword matching. Go lowers the
// Turkish dotted capital İ to "i" plus a combining dot, which would break
// byte-level Contains, so the combining dot is folded away.
func normalizeMessage(s string) string {
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "̇", "")
}
