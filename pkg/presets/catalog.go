package presets

import (
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

var catalog = []Preset{
	{
		Type:        enums.BusinessTypeFruits,
		Label:       "Fruits Vendor",
		Emoji:       "🍎",
		IconName:    "Apple",
		Description: "Fresh fruits, dry fruits, juices & seasonal specials",
		Theme:       types.ThemeConfig{Primary: "#16a34a", Accent: "#f97316", Background: "#f0fdf4", Foreground: "#14532d"},
		DefaultCategories: []CategoryPreset{
			{Name: "Seasonal Fruits", IconName: "Sun"},
			{Name: "Exotic Fruits", IconName: "Sparkles"},
			{Name: "Daily Essentials", IconName: "ShoppingBasket"},
			{Name: "Dry Fruits", IconName: "Nut"},
			{Name: "Juices & Pulp", IconName: "GlassWater"},
		},
		DefaultUnits:    []string{"kg", "dozen", "piece", "pack"},
		HeroPlaceholder: "/presets/fruits/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Alphonso Mango",
				Description:   "Premium Ratnagiri Alphonso mangoes, naturally ripened. Sweet, aromatic, and perfect for desserts or eating fresh.",
				PriceCents:    35000,
				Unit:          "dozen",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1553279768-865429fa0078?w=400&h=400&fit=crop",
			},
			{
				Name:          "Fresh Strawberries",
				Description:   "Farm-fresh Mahabaleshwar strawberries, handpicked and packed same day. Rich in Vitamin C.",
				PriceCents:    12000,
				Unit:          "pack",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?w=400&h=400&fit=crop",
			},
			{
				Name:          "Banana Robusta",
				Description:   "Fresh green bananas from local farms. Rich in potassium and great for daily consumption.",
				PriceCents:    4000,
				Unit:          "kg",
				CategoryIndex: 2,
				Image:         "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=400&h=400&fit=crop",
			},
			{
				Name:          "Mixed Dry Fruits Premium Box",
				Description:   "Curated box with almonds, cashews, raisins, and pistachios. Perfect gift or daily snack.",
				PriceCents:    49900,
				Unit:          "pack",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1606050451137-31da498e7f42?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeNursery,
		Label:       "Nursery & Plants",
		Emoji:       "🌱",
		IconName:    "Sprout",
		Description: "Indoor & outdoor plants, seeds, pots and gardening tools",
		Theme:       types.ThemeConfig{Primary: "#166534", Accent: "#84cc16", Background: "#f0fdf4", Foreground: "#052e16"},
		DefaultCategories: []CategoryPreset{
			{Name: "Indoor Plants", IconName: "Home"},
			{Name: "Outdoor Plants", IconName: "TreePine"},
			{Name: "Seeds", IconName: "Leaf"},
			{Name: "Pots & Planters", IconName: "FlowerPot"},
			{Name: "Fertilizers & Soil", IconName: "Mountain"},
			{Name: "Tools", IconName: "Wrench"},
		},
		DefaultUnits:    []string{"piece", "bag", "set", "packet"},
		HeroPlaceholder: "/presets/nursery/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Money Plant (Golden Pothos)",
				Description:   "Easy to care for indoor plant that purifies air. Comes in a 6-inch plastic pot with healthy vines.",
				PriceCents:    14900,
				Unit:          "piece",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1637967886160-fd78dc3ce3f5?w=400&h=400&fit=crop",
			},
			{
				Name:          "Jade Succulent",
				Description:   "Beautiful Crassula ovata succulent, symbol of prosperity. Low maintenance, perfect for desks.",
				PriceCents:    19900,
				Unit:          "piece",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1509423350716-97f9360b4e09?w=400&h=400&fit=crop",
			},
			{
				Name:          "Organic Vermicompost 5kg",
				Description:   "100% organic vermicompost enriched with micro-nutrients. Ideal for all types of plants.",
				PriceCents:    25000,
				Unit:          "bag",
				CategoryIndex: 4,
				Image:         "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400&h=400&fit=crop",
			},
			{
				Name:          "Ceramic Pot Set (3 pcs)",
				Description:   "Elegant hand-painted ceramic pots in 3 sizes with drainage holes. Modern design.",
				PriceCents:    59900,
				Unit:          "set",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeNonVeg,
		Label:       "Non-Veg & Meat",
		Emoji:       "🍖",
		IconName:    "Drumstick",
		Description: "Fresh chicken, mutton, fish, eggs & marinated products",
		Theme:       types.ThemeConfig{Primary: "#dc2626", Accent: "#1c1917", Background: "#fef2f2", Foreground: "#450a0a"},
		DefaultCategories: []CategoryPreset{
			{Name: "Chicken", IconName: "Bird"},
			{Name: "Mutton", IconName: "Beef"},
			{Name: "Fish & Seafood", IconName: "Fish"},
			{Name: "Eggs", IconName: "Egg"},
			{Name: "Marinated & Ready-to-Cook", IconName: "ChefHat"},
		},
		DefaultUnits:    []string{"kg", "piece", "pack", "dozen"},
		HeroPlaceholder: "/presets/nonveg/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Chicken Breast Boneless",
				Description:   "Fresh, antibiotic-free boneless chicken breast. Cleaned and packed hygienically. Ideal for grilling.",
				PriceCents:    28000,
				Unit:          "kg",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=400&h=400&fit=crop",
			},
			{
				Name:          "Fresh Pomfret (Medium)",
				Description:   "Wild-caught silver pomfret, cleaned and ready to cook. 2-3 pieces per kg.",
				PriceCents:    45000,
				Unit:          "kg",
				CategoryIndex: 2,
				Image:         "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=400&h=400&fit=crop",
			},
			{
				Name:          "Farm Eggs (12 pcs)",
				Description:   "Country eggs from free-range hens. Rich in nutrition with deep yellow yolk.",
				PriceCents:    9000,
				Unit:          "dozen",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=400&h=400&fit=crop",
			},
			{
				Name:          "Tandoori Marinated Drumsticks",
				Description:   "Pre-marinated chicken drumsticks with tandoori spices. Just grill or bake — ready in 25 min.",
				PriceCents:    32000,
				Unit:          "pack",
				CategoryIndex: 4,
				Image:         "https://images.unsplash.com/photo-1532636875-6be04a8c2653?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeElectrical,
		Label:       "Electrical & Hardware",
		Emoji:       "⚡",
		IconName:    "Zap",
		Description: "Wiring, switches, lighting, tools & safety equipment",
		Theme:       types.ThemeConfig{Primary: "#2563eb", Accent: "#f59e0b", Background: "#eff6ff", Foreground: "#1e3a5f"},
		DefaultCategories: []CategoryPreset{
			{Name: "Wiring & Cables", IconName: "Cable"},
			{Name: "Switches & Sockets", IconName: "ToggleRight"},
			{Name: "Lighting", IconName: "Lightbulb"},
			{Name: "Tools", IconName: "Wrench"},
			{Name: "Safety Equipment", IconName: "ShieldCheck"},
			{Name: "MCBs & Panels", IconName: "LayoutGrid"},
		},
		DefaultUnits:    []string{"piece", "meter", "box", "set", "roll"},
		HeroPlaceholder: "/presets/electrical/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "LED Bulb 9W (Cool White)",
				Description:   "Energy-efficient LED bulb with B22 base. 15,000 hours lifespan, ISI certified.",
				PriceCents:    8500,
				Unit:          "piece",
				CategoryIndex: 2,
				Image:         "https://images.unsplash.com/photo-1550985543-49bee3167284?w=400&h=400&fit=crop",
			},
			{
				Name:          "Modular Switch Board 8M",
				Description:   "Premium 8-module switch board with flame-retardant body. Elegant finish.",
				PriceCents:    45000,
				Unit:          "piece",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1558618666-fcd25c85f82e?w=400&h=400&fit=crop",
			},
			{
				Name:          "Copper Wire 1.5mm (90m)",
				Description:   "PVC insulated 1.5 sq mm copper wire. Fire resistant, ISI marked, suitable for domestic wiring.",
				PriceCents:    185000,
				Unit:          "roll",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1586953208270-767889fa9b0e?w=400&h=400&fit=crop",
			},
			{
				Name:          "Digital Multimeter",
				Description:   "Professional-grade digital multimeter with auto-ranging. Measures AC/DC voltage, current & resistance.",
				PriceCents:    69900,
				Unit:          "piece",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeVegetables,
		Label:       "Vegetables & Grocery",
		Emoji:       "🥬",
		IconName:    "Salad",
		Description: "Fresh vegetables, spices, pulses, grains & daily groceries",
		Theme:       types.ThemeConfig{Primary: "#15803d", Accent: "#eab308", Background: "#fefce8", Foreground: "#1a2e05"},
		DefaultCategories: []CategoryPreset{
			{Name: "Leafy Greens", IconName: "Leaf"},
			{Name: "Root Vegetables", IconName: "Carrot"},
			{Name: "Spices & Masala", IconName: "Flame"},
			{Name: "Pulses & Grains", IconName: "Wheat"},
			{Name: "Oils & Ghee", IconName: "Droplets"},
			{Name: "Snacks", IconName: "Cookie"},
		},
		DefaultUnits:    []string{"kg", "gram", "liter", "pack", "bundle"},
		HeroPlaceholder: "/presets/vegetables/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Fresh Spinach (Palak)",
				Description:   "Farm-fresh organic spinach bundle. Washed and sorted. Rich in iron and vitamins.",
				PriceCents:    3000,
				Unit:          "bundle",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=400&h=400&fit=crop",
			},
			{
				Name:          "Tomatoes",
				Description:   "Fresh, firm tomatoes sourced from local farms. Perfect for curries, salads, and chutneys.",
				PriceCents:    4000,
				Unit:          "kg",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1546470427-0d4db154ceb8?w=400&h=400&fit=crop",
			},
			{
				Name:          "Toor Dal (Arhar) 1kg",
				Description:   "Premium quality unpolished toor dal. Cooks fast, rich in protein. Staple for Indian households.",
				PriceCents:    16000,
				Unit:          "kg",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1585032226651-759b368d7246?w=400&h=400&fit=crop",
			},
			{
				Name:          "Cold-Pressed Groundnut Oil",
				Description:   "Traditional cold-pressed (kachi ghani) groundnut oil. No preservatives. 1 litre pack.",
				PriceCents:    28000,
				Unit:          "liter",
				CategoryIndex: 4,
				Image:         "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeBakery,
		Label:       "Bakery & Sweets",
		Emoji:       "🍰",
		IconName:    "Cake",
		Description: "Cakes, cookies, bread, Indian sweets & custom orders",
		Theme:       types.ThemeConfig{Primary: "#e11d48", Accent: "#fef3c7", Background: "#fff1f2", Foreground: "#4c0519"},
		DefaultCategories: []CategoryPreset{
			{Name: "Cakes", IconName: "Cake"},
			{Name: "Cookies & Biscuits", IconName: "Cookie"},
			{Name: "Bread & Buns", IconName: "Croissant"},
			{Name: "Indian Sweets", IconName: "Candy"},
			{Name: "Savory Snacks", IconName: "Popcorn"},
			{Name: "Custom Orders", IconName: "Gift"},
		},
		DefaultUnits:    []string{"piece", "kg", "box", "dozen", "pack"},
		HeroPlaceholder: "/presets/bakery/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Chocolate Truffle Cake",
				Description:   "Rich, moist chocolate truffle cake with Belgian chocolate ganache. Available in 500g and 1kg.",
				PriceCents:    65000,
				Unit:          "kg",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400&h=400&fit=crop",
			},
			{
				Name:          "Butter Cookies Tin (400g)",
				Description:   "Assorted Danish-style butter cookies in a premium tin. Made with real butter.",
				PriceCents:    35000,
				Unit:          "box",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?w=400&h=400&fit=crop",
			},
			{
				Name:          "Kaju Katli (500g)",
				Description:   "Premium cashew fudge made with pure ghee. Handcrafted traditional Indian sweet.",
				PriceCents:    42000,
				Unit:          "box",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1666190094755-bf0c86a5f2a4?w=400&h=400&fit=crop",
			},
			{
				Name:          "Whole Wheat Bread",
				Description:   "Freshly baked whole wheat bread, no preservatives. Soft and perfect for sandwiches.",
				PriceCents:    4500,
				Unit:          "piece",
				CategoryIndex: 2,
				Image:         "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypeFashion,
		Label:       "Fashion & Clothing",
		Emoji:       "👗",
		IconName:    "Shirt",
		Description: "Men, women, kids clothing, accessories & ethnic wear",
		Theme:       types.ThemeConfig{Primary: "#7c3aed", Accent: "#f472b6", Background: "#faf5ff", Foreground: "#2e1065"},
		DefaultCategories: []CategoryPreset{
			{Name: "Men", IconName: "User"},
			{Name: "Women", IconName: "User"},
			{Name: "Kids", IconName: "Baby"},
			{Name: "Accessories", IconName: "Watch"},
			{Name: "Footwear", IconName: "Footprints"},
			{Name: "Ethnic Wear", IconName: "Sparkles"},
		},
		DefaultUnits:    []string{"piece", "pair", "set"},
		HeroPlaceholder: "/presets/fashion/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Cotton Kurta Set",
				Description:   "Handloom cotton kurta with matching palazzo. Breathable fabric, perfect for daily wear.",
				PriceCents:    89900,
				Unit:          "piece",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=400&h=400&fit=crop",
			},
			{
				Name:          "Silk Dupatta",
				Description:   "Pure silk dupatta with traditional bandhani print. Vibrant colors, lightweight and elegant.",
				PriceCents:    49900,
				Unit:          "piece",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=400&h=400&fit=crop",
			},
			{
				Name:          "Men's Chino Pants",
				Description:   "Slim-fit cotton chinos in khaki. Comfortable stretch fabric, suitable for casual and semi-formal.",
				PriceCents:    129900,
				Unit:          "piece",
				CategoryIndex: 0,
				Image:         "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?w=400&h=400&fit=crop",
			},
			{
				Name:          "Handcraft Jute Tote Bag",
				Description:   "Eco-friendly handcrafted jute bag with cotton lining. Stylish and sustainable.",
				PriceCents:    24900,
				Unit:          "piece",
				CategoryIndex: 3,
				Image:         "https://images.unsplash.com/photo-1594223274512-ad4803739b7c?w=400&h=400&fit=crop",
			},
		},
	},
	{
		Type:        enums.BusinessTypePharmacy,
		Label:       "Pharmacy & Wellness",
		Emoji:       "💊",
		IconName:    "Pill",
		Description: "Medicines, supplements, personal care & health devices",
		Theme:       types.ThemeConfig{Primary: "#0d9488", Accent: "#f0fdf4", Background: "#f0fdfa", Foreground: "#042f2e"},
		DefaultCategories: []CategoryPreset{
			{Name: "Medicines", IconName: "Pill"},
			{Name: "Vitamins & Supplements", IconName: "Tablets"},
			{Name: "Personal Care", IconName: "Heart"},
			{Name: "Baby Care", IconName: "Baby"},
			{Name: "Health Devices", IconName: "Activity"},
			{Name: "Ayurvedic", IconName: "Leaf"},
		},
		DefaultUnits:    []string{"piece", "strip", "bottle", "pack", "tube"},
		HeroPlaceholder: "/presets/pharmacy/hero.jpg",
		DemoProducts: []DemoProduct{
			{
				Name:          "Multivitamin Tablets (60 tabs)",
				Description:   "Daily multivitamin with A, C, D, E, B-complex, Zinc & Iron. Supports overall immunity.",
				PriceCents:    35000,
				Unit:          "bottle",
				CategoryIndex: 1,
				Image:         "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=400&h=400&fit=crop",
			},
			{
				Name:          "Digital Thermometer",
				Description:   "Fast-reading digital thermometer with beep alert. Accurate to ±0.1°C. Battery included.",
				PriceCents:    19900,
				Unit:          "piece",
				CategoryIndex: 4,
				Image:         "https://images.unsplash.com/photo-1584515933487-779824d29309?w=400&h=400&fit=crop",
			},
			{
				Name:          "Aloe Vera Gel (200ml)",
				Description:   "Pure aloe vera gel for skin and hair. No parabens, no artificial colors. Soothing and hydrating.",
				PriceCents:    15000,
				Unit:          "piece",
				CategoryIndex: 2,
				Image:         "https://images.unsplash.com/photo-1596178065887-1198b6148b2b?w=400&h=400&fit=crop",
			},
			{
				Name:          "Chyawanprash (500g)",
				Description:   "Authentic Ayurvedic chyawanprash with 40+ herbs. Boosts immunity and energy naturally.",
				PriceCents:    28000,
				Unit:          "pack",
				CategoryIndex: 5,
				Image:         "https://images.unsplash.com/photo-1611241893603-3c359704e0ee?w=400&h=400&fit=crop",
			},
		},
	},
}
