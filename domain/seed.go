package domain

// DefaultCatalog is the price list installed on first run. Admins reshape it
// at runtime through the price-management flow.
func DefaultCatalog() PriceCatalog {
	return PriceCatalog{
		"battery":  {"HP": 12000, "Dell": 13000, "Lenovo": 11500, "Acer": 10500, "Asus": 12500},
		"ram_4gb":  {"HP": 6000, "Dell": 6500, "Lenovo": 5800, "Acer": 5500, "Asus": 6200},
		"ram_8gb":  {"HP": 10000, "Dell": 10500, "Lenovo": 9800, "Acer": 9500, "Asus": 10200},
		"screen":   {"HP": 15000, "Dell": 16000, "Lenovo": 14500, "Acer": 13500, "Asus": 15500},
		"keyboard": {"HP": 7000, "Dell": 7500, "Lenovo": 6800, "Acer": 6200, "Asus": 7200},
		"charger":  {"HP": 8000, "Dell": 8500, "Lenovo": 7800, "Acer": 7200, "Asus": 8200},
		"ssd_256":  {"HP": 18000, "Dell": 19000, "Lenovo": 17500, "Acer": 16500, "Asus": 18500},
		"ssd_512":  {"HP": 25000, "Dell": 26000, "Lenovo": 24500, "Acer": 23000, "Asus": 25500},
		"hdd_1tb":  {"HP": 15000, "Dell": 15500, "Lenovo": 14800, "Acer": 14000, "Asus": 15200},
	}
}

// DefaultTechnicians is the roster installed on first run.
func DefaultTechnicians() []Technician {
	return []Technician{
		{Name: "Engineer Orbem", Contact: "08012345678", Rating: "4.8/5", Fee: "₦2,000", Area: "John E204"},
		{Name: "Tech Joel", Contact: "08087654321", Rating: "4.6/5", Fee: "₦1,500", Area: "Peter E205"},
	}
}

// DefaultPaymentInfo is the bank destination installed on first run.
func DefaultPaymentInfo() PaymentInfo {
	return PaymentInfo{
		BankName:      "First Bank",
		AccountNumber: "9485585858",
		AccountName:   "UUFHHFHDJD",
	}
}

// DefaultTips seeds the Tips & Guides section. Titles double as keys for
// the admin tip-editing flow.
func DefaultTips() map[string]string {
	return map[string]string{
		"battery":  "🔋 *Battery Tips*\n\n✅ Keep 20–80%\n✅ Use original charger\n✅ Avoid heat\n❌ Don't drain to 0%",
		"hardware": "⚠️ *Hardware Signs*\n\n• Weird noises\n• Random shutdowns\n• Overheating\n• Screen flicker",
		"cleaning": "🧽 *Cleaning*\n\nWeekly: screen + keyboard\nMonthly: vents & fans\nUse microfiber + compressed air",
	}
}

// DefaultInquiryResponses seeds the canned answers offered on the inquiry
// menu, keyed by inquiry type.
func DefaultInquiryResponses() map[string]string {
	return map[string]string{
		"boot":        "💻 *Not Booting*\n\n*Try:* different adapter, remove battery, hold power 30s.",
		"display":     "🖥 *Display Issues*\n\n*Check:* external monitor, brightness, physical damage.",
		"charging":    "🔋 *Charging Issues*\n\n*Try:* different charger, clean port, battery calibration.",
		"performance": "⚡ *Performance*\n\n*Try:* restart, close apps, AV scan, clean temp files.",
	}
}
