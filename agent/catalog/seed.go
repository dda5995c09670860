package catalog

import "time"

// SeedProducts returns the demo product dataset in catalog order.
func SeedProducts() []Product {
	return []Product{
		{
			ID:            "prod-001",
			Name:          "Sony WH-1000XM5 Kablosuz Kulaklık",
			Description:   "Endüstrinin en iyi gürültü engelleme teknolojisi. 30 saat pil ömrü, hızlı şarj desteği ve kristal netliğinde ses kalitesi.",
			Category:      CategoryElectronics,
			Price:         899.99,
			OriginalPrice: 1099.99,
			Stock:         45,
			Brand:         "Sony",
			SKU:           "SONY-WH1000XM5-BLK",
			Rating:        4.8,
			ReviewCount:   1247,
			Tags:          []string{"kulaklık", "bluetooth", "gürültü engelleme", "sony", "premium"},
			InStock:       true,
			Specifications: map[string]string{
				"Bağlantı": "Bluetooth 5.2",
				"Pil Ömrü": "30 saat",
				"Ağırlık":  "250g",
				"Renk":     "Siyah",
				"Garanti":  "2 yıl",
			},
			Reviews: []Review{
				{ReviewerName: "Ahmet Y.", Rating: 5.0, Comment: "Muhteşem gürültü engelleme. Uçuşlarda vazgeçilmez oldu.", VerifiedPurchase: true, Date: "2024-11-15"},
				{ReviewerName: "Zeynep K.", Rating: 4.5, Comment: "Ses kalitesi harika ama biraz ağır.", VerifiedPurchase: true, Date: "2024-12-01"},
			},
		},
		{
			ID:            "prod-002",
			Name:          `Apple MacBook Pro 14" M3 Pro`,
			Description:   "M3 Pro çipiyle profesyonel performans. 18 saate kadar pil ömrü, Liquid Retina XDR ekran.",
			Category:      CategoryElectronics,
			Price:         54999.99,
			OriginalPrice: 59999.99,
			Stock:         12,
			Brand:         "Apple",
			SKU:           "APPLE-MBP14-M3PRO-SLV",
			Rating:        4.9,
			ReviewCount:   567,
			Tags:          []string{"laptop", "apple", "macbook", "m3", "profesyonel"},
			InStock:       true,
			Specifications: map[string]string{
				"İşlemci":  "Apple M3 Pro",
				"RAM":      "18GB",
				"Depolama": "512GB SSD",
				"Ekran":    `14.2" Liquid Retina XDR`,
				"Pil":      "18 saat",
			},
			Reviews: []Review{
				{ReviewerName: "Burak S.", Rating: 5.0, Comment: "Geliştirici olarak çok verimli. Build süreleri inanılmaz hızlı.", VerifiedPurchase: true, Date: "2024-10-20"},
			},
		},
		{
			ID:            "prod-003",
			Name:          "Nike Air Max 270 Spor Ayakkabı",
			Description:   "Max Air yastıklama ile maksimum konfor. Nefes alan mesh üst yüzey.",
			Category:      CategoryClothing,
			Price:         2199.99,
			OriginalPrice: 2799.99,
			Stock:         78,
			Brand:         "Nike",
			SKU:           "NIKE-AM270-WHT-42",
			Rating:        4.6,
			ReviewCount:   3421,
			Tags:          []string{"ayakkabı", "spor", "nike", "koşu", "rahat"},
			InStock:       true,
			Specifications: map[string]string{
				"Numara":   "36-47",
				"Malzeme":  "Mesh + Deri",
				"Taban":    "Foam + Air Max",
				"Kullanım": "Günlük / Koşu",
			},
			Reviews: []Review{
				{ReviewerName: "Fatma B.", Rating: 4.0, Comment: "Çok rahat, sehirde günlük kullanım için mükemmel.", VerifiedPurchase: true, Date: "2024-11-28"},
				{ReviewerName: "Mehmet A.", Rating: 5.0, Comment: "Fiyat performans açısından harika.", VerifiedPurchase: true, Date: "2024-12-10"},
			},
		},
		{
			ID:            "prod-004",
			Name:          "Kindle Paperwhite (11. Nesil)",
			Description:   "300 ppi ekran, 10 hafta pil ömrü, su geçirmez tasarım. 8GB depolama.",
			Category:      CategoryElectronics,
			Price:         1299.99,
			OriginalPrice: 1499.99,
			Stock:         156,
			Brand:         "Amazon",
			SKU:           "AMZN-KINDLE-PW11-BLK",
			Rating:        4.7,
			ReviewCount:   8934,
			Tags:          []string{"e-kitap", "okuyucu", "kindle", "amazon", "okuma"},
			InStock:       true,
			Specifications: map[string]string{
				"Ekran":          `6.8" 300ppi E Ink`,
				"Depolama":       "8GB",
				"Pil Ömrü":       "10 hafta",
				"Su Geçirmezlik": "IPX8",
			},
			Reviews: []Review{
				{ReviewerName: "Elif C.", Rating: 5.0, Comment: "Kitap okumayı tamamen yeniden keşfettim. Gözler yorulmuyor.", VerifiedPurchase: true, Date: "2024-09-15"},
			},
		},
		{
			ID:            "prod-005",
			Name:          "Dyson V15 Detect Kablosuz Süpürge",
			Description:   "Lazer toz tespiti teknolojisi. 60 dakika pil ömrü, HEPA filtrasyon.",
			Category:      CategoryHome,
			Price:         12999.99,
			OriginalPrice: 14999.99,
			Stock:         23,
			Brand:         "Dyson",
			SKU:           "DYSON-V15-DETECT",
			Rating:        4.8,
			ReviewCount:   2156,
			Tags:          []string{"süpürge", "kablosuz", "dyson", "temizlik", "ev"},
			InStock:       true,
			Specifications: map[string]string{
				"Pil Ömrü":  "60 dakika",
				"Emme Gücü": "230AW",
				"Filtre":    "HEPA",
				"Ağırlık":   "3.1kg",
			},
		},
		{
			ID:            "prod-006",
			Name:          "Samsung Galaxy S24 Ultra",
			Description:   "200MP kamera, 5000mAh batarya, Snapdragon 8 Gen 3, S Pen dahil.",
			Category:      CategoryElectronics,
			Price:         47999.99,
			OriginalPrice: 52999.99,
			Stock:         34,
			Brand:         "Samsung",
			SKU:           "SAMSUNG-S24U-BLK-256",
			Rating:        4.7,
			ReviewCount:   4521,
			Tags:          []string{"telefon", "samsung", "galaxy", "android", "kamera"},
			InStock:       true,
			Specifications: map[string]string{
				"İşlemci":  "Snapdragon 8 Gen 3",
				"RAM":      "12GB",
				"Depolama": "256GB",
				"Kamera":   "200MP + 12MP + 10MP + 50MP",
				"Batarya":  "5000mAh",
				"Ekran":    `6.8" Dynamic AMOLED 2X`,
			},
			Reviews: []Review{
				{ReviewerName: "Can T.", Rating: 5.0, Comment: "Kamera kalitesi profesyonel fotoğraf makineleriyle yarışıyor.", VerifiedPurchase: true, Date: "2024-10-05"},
			},
		},
		{
			ID:            "prod-007",
			Name:          "Levi's 501 Original Erkek Jean",
			Description:   "İkonik düz kesim Levi's 501. %100 pamuk, dayanıklı ve zamansız stil.",
			Category:      CategoryClothing,
			Price:         899.99,
			OriginalPrice: 1099.99,
			Stock:         0,
			Brand:         "Levi's",
			SKU:           "LEVIS-501-32X32-BLU",
			Rating:        4.5,
			ReviewCount:   12453,
			Tags:          []string{"jean", "kot", "erkek", "levi's", "klasik"},
			InStock:       false,
			Specifications: map[string]string{
				"Beden":    "Tüm bedenler",
				"Materyal": "%100 Pamuk",
				"Kesim":    "Düz",
				"Renk":     "Mavi",
			},
		},
		{
			ID:            "prod-008",
			Name:          "Philips Hue Starter Kit (4 Ampul + Bridge)",
			Description:   "Akıllı ev aydınlatma sistemi. 16 milyon renk, uygulama ile kontrol.",
			Category:      CategoryHome,
			Price:         2499.99,
			OriginalPrice: 2999.99,
			Stock:         67,
			Brand:         "Philips",
			SKU:           "PHILIPS-HUE-SK4",
			Rating:        4.4,
			ReviewCount:   5671,
			Tags:          []string{"akıllı ev", "aydınlatma", "philips", "hue", "otomasyon"},
			InStock:       true,
			Specifications: map[string]string{
				"Ampul Sayısı": "4",
				"Protokol":     "Zigbee / Bluetooth",
				"Renk":         "16 milyon",
				"Güç":          "9W (75W eşdeğeri)",
			},
		},
		{
			ID:            "prod-009",
			Name:          "Atomic Habits - James Clear (Türkçe)",
			Description:   "Küçük alışkanlıkların büyük etkisi. 10 milyonun üzerinde kopya satan dünya genelinde bestseller.",
			Category:      CategoryBooks,
			Price:         89.99,
			OriginalPrice: 119.99,
			Stock:         234,
			Brand:         "Olimpos",
			SKU:           "BOOK-ATOMIC-HABITS-TR",
			Rating:        4.9,
			ReviewCount:   34521,
			Tags:          []string{"kitap", "kişisel gelişim", "alışkanlık", "bestseller"},
			InStock:       true,
			Specifications: map[string]string{
				"Sayfa Sayısı": "320",
				"Dil":          "Türkçe",
				"Yayınevi":     "Olimpos",
				"Baskı":        "15. Baskı",
			},
		},
		{
			ID:            "prod-010",
			Name:          "Nespresso Vertuo Next Kahve Makinesi",
			Description:   "Centrifusion teknolojisi ile mükemmel espresso. 5 bardak boyutu, akıllı kapsül tanıma.",
			Category:      CategoryHome,
			Price:         3299.99,
			OriginalPrice: 3999.99,
			Stock:         45,
			Brand:         "Nespresso",
			SKU:           "NESPRESSO-VERTUO-NEXT",
			Rating:        4.6,
			ReviewCount:   7823,
			Tags:          []string{"kahve", "nespresso", "espresso", "kapsül", "mutfak"},
			InStock:       true,
			Specifications: map[string]string{
				"Kapasite":        "1.1L",
				"Basınç":          "19 bar",
				"Isınma":          "30 saniye",
				"Bardak Boyutları": "5 farklı",
			},
		},
	}
}

// SeedCustomers returns the demo customer dataset in catalog order.
func SeedCustomers() []Customer {
	return []Customer{
		{
			ID:            "cust-001",
			Email:         "ahmet.yilmaz@example.com",
			FullName:      "Ahmet Yılmaz",
			Phone:         "+90 532 123 4567",
			TotalOrders:   8,
			TotalSpent:    12450.50,
			LoyaltyPoints: 1245,
			CreatedAt:     time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "cust-002",
			Email:         "zeynep.kaya@example.com",
			FullName:      "Zeynep Kaya",
			Phone:         "+90 543 987 6543",
			TotalOrders:   3,
			TotalSpent:    3210.00,
			LoyaltyPoints: 321,
			CreatedAt:     time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "cust-003",
			Email:         "mehmet.demir@example.com",
			FullName:      "Mehmet Demir",
			Phone:         "+90 555 456 7890",
			TotalOrders:   15,
			TotalSpent:    45670.00,
			LoyaltyPoints: 4567,
			CreatedAt:     time.Date(2022, 7, 22, 0, 0, 0, 0, time.UTC),
		},
	}
}

// SeedOrders returns the demo order dataset. Timestamps are anchored to now
// so tracking histories always read as recent activity.
func SeedOrders(now time.Time) []Order {
	now = now.UTC()
	return []Order{
		{
			ID:            "ord-001",
			CustomerID:    "cust-001",
			CustomerEmail: "ahmet.yilmaz@example.com",
			Items: []OrderItem{
				{ProductID: "prod-001", ProductName: "Sony WH-1000XM5 Kablosuz Kulaklık", Quantity: 1, UnitPrice: 899.99, TotalPrice: 899.99},
			},
			Status: OrderShipped,
			ShippingAddress: ShippingAddress{
				FullName:   "Ahmet Yılmaz",
				Street:     "Atatürk Cad. No:42",
				City:       "İstanbul",
				State:      "İstanbul",
				PostalCode: "34000",
				Country:    "TR",
			},
			Subtotal:          899.99,
			Tax:               161.99,
			Total:             1061.98,
			CreatedAt:         now.Add(-3 * 24 * time.Hour),
			UpdatedAt:         now.Add(-12 * time.Hour),
			TrackingNumber:    "TK123456789TR",
			EstimatedDelivery: "2025-02-19",
			TrackingEvents: []TrackingEvent{
				{Timestamp: now.Add(-3 * 24 * time.Hour), Status: "Sipariş Alındı", Location: "İstanbul Depo", Description: "Siparişiniz sisteme kaydedildi"},
				{Timestamp: now.Add(-2 * 24 * time.Hour), Status: "Kargoya Verildi", Location: "İstanbul Dağıtım Merkezi", Description: "Paketiniz kargo firmasına teslim edildi"},
				{Timestamp: now.Add(-12 * time.Hour), Status: "Dağıtımda", Location: "İstanbul Avrupa Yakası Şube", Description: "Paketiniz dağıtım şubesine ulaştı"},
			},
		},
		{
			ID:            "ord-002",
			CustomerID:    "cust-001",
			CustomerEmail: "ahmet.yilmaz@example.com",
			Items: []OrderItem{
				{ProductID: "prod-009", ProductName: "Atomic Habits - James Clear", Quantity: 2, UnitPrice: 89.99, TotalPrice: 179.98},
				{ProductID: "prod-004", ProductName: "Kindle Paperwhite (11. Nesil)", Quantity: 1, UnitPrice: 1299.99, TotalPrice: 1299.99},
			},
			Status: OrderDelivered,
			ShippingAddress: ShippingAddress{
				FullName:   "Ahmet Yılmaz",
				Street:     "Atatürk Cad. No:42",
				City:       "İstanbul",
				State:      "İstanbul",
				PostalCode: "34000",
				Country:    "TR",
			},
			Subtotal:       1479.97,
			Tax:            266.39,
			Total:          1746.36,
			CreatedAt:      now.Add(-15 * 24 * time.Hour),
			UpdatedAt:      now.Add(-10 * 24 * time.Hour),
			TrackingNumber: "TK987654321TR",
			TrackingEvents: []TrackingEvent{
				{Timestamp: now.Add(-15 * 24 * time.Hour), Status: "Sipariş Alındı", Location: "İstanbul Depo", Description: "Siparişiniz sisteme kaydedildi"},
				{Timestamp: now.Add(-10 * 24 * time.Hour), Status: "Teslim Edildi", Location: "İstanbul", Description: "Paketiniz kapıda teslim edildi"},
			},
		},
		{
			ID:            "ord-003",
			CustomerID:    "cust-002",
			CustomerEmail: "zeynep.kaya@example.com",
			Items: []OrderItem{
				{ProductID: "prod-003", ProductName: "Nike Air Max 270 Spor Ayakkabı", Quantity: 1, UnitPrice: 2199.99, TotalPrice: 2199.99},
			},
			Status: OrderProcessing,
			ShippingAddress: ShippingAddress{
				FullName:   "Zeynep Kaya",
				Street:     "Bağdat Cad. No:15",
				City:       "İstanbul",
				State:      "İstanbul",
				PostalCode: "34730",
				Country:    "TR",
			},
			Subtotal:          2199.99,
			Tax:               396.0,
			Total:             2595.99,
			CreatedAt:         now.Add(-6 * time.Hour),
			UpdatedAt:         now.Add(-2 * time.Hour),
			EstimatedDelivery: "2025-02-20",
		},
		{
			ID:            "ord-004",
			CustomerID:    "cust-003",
			CustomerEmail: "mehmet.demir@example.com",
			Items: []OrderItem{
				{ProductID: "prod-002", ProductName: `Apple MacBook Pro 14" M3 Pro`, Quantity: 1, UnitPrice: 54999.99, TotalPrice: 54999.99},
			},
			Status: OrderConfirmed,
			ShippingAddress: ShippingAddress{
				FullName:   "Mehmet Demir",
				Street:     "Cumhuriyet Mah. 456. Sok. No:7",
				City:       "Ankara",
				State:      "Ankara",
				PostalCode: "06000",
				Country:    "TR",
			},
			Subtotal:          54999.99,
			Tax:               9899.99,
			Total:             64899.98,
			CreatedAt:         now.Add(-2 * time.Hour),
			UpdatedAt:         now.Add(-1 * time.Hour),
			EstimatedDelivery: "2025-02-22",
		},
	}
}
