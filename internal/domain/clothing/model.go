package clothing

// Recommendation is the outfit advice returned for a weather condition and temperature.
// The first entry of each list is the primary item.
type Recommendation struct {
	Outfit      []string `json:"outfit"`
	Accessories []string `json:"accessories"`
	Footwear    []string `json:"footwear"`
	Tips        []string `json:"tips"`
}

// Tier names a temperature band.
type Tier string

const (
	TierHot      Tier = "hot"
	TierWarm     Tier = "warm"
	TierMild     Tier = "mild"
	TierCool     Tier = "cool"
	TierCold     Tier = "cold"
	TierVeryCold Tier = "very_cold"
	TierFreezing Tier = "freezing"
)

type tierRule struct {
	tier        Tier
	minCelsius  float64
	outfit      []string
	accessories []string
	footwear    []string
	tips        []string
}

// tierRules is ordered by descending threshold; the freezing tier has no lower bound.
var tierRules = []tierRule{
	{
		tier:        TierHot,
		minCelsius:  30,
		outfit:      []string{"Light cotton t-shirt or tank top", "Shorts or light sundress"},
		accessories: []string{"Sunglasses", "Sun hat or cap"},
		footwear:    []string{"Sandals or breathable sneakers"},
		tips:        []string{"Stay hydrated and seek shade", "Use sunscreen SPF 30+"},
	},
	{
		tier:        TierWarm,
		minCelsius:  25,
		outfit:      []string{"Light shirt or blouse", "Light pants, skirt, or shorts"},
		accessories: []string{"Sunglasses"},
		footwear:    []string{"Comfortable shoes or sandals"},
		tips:        []string{"Perfect weather for outdoor activities"},
	},
	{
		tier:       TierMild,
		minCelsius: 20,
		outfit:     []string{"Long-sleeve shirt or light sweater", "Jeans or light pants"},
		footwear:   []string{"Sneakers or casual shoes"},
		tips:       []string{"Great weather for walking"},
	},
	{
		tier:        TierCool,
		minCelsius:  15,
		outfit:      []string{"Sweater or light jacket", "Long pants or jeans"},
		accessories: []string{"Light scarf (optional)"},
		footwear:    []string{"Closed shoes or boots"},
		tips:        []string{"Perfect for layering"},
	},
	{
		tier:        TierCold,
		minCelsius:  10,
		outfit:      []string{"Warm jacket or coat", "Sweater or hoodie", "Long pants or jeans"},
		accessories: []string{"Scarf and beanie"},
		footwear:    []string{"Boots or warm shoes"},
		tips:        []string{"Layer up for warmth"},
	},
	{
		tier:        TierVeryCold,
		minCelsius:  0,
		outfit:      []string{"Heavy winter coat", "Thick sweater or fleece", "Thermal underwear", "Warm pants or jeans"},
		accessories: []string{"Warm scarf, beanie, and gloves"},
		footwear:    []string{"Insulated boots"},
		tips:        []string{"Cover exposed skin", "Stay warm and dry"},
	},
}

var freezingRule = tierRule{
	tier:        TierFreezing,
	outfit:      []string{"Heavy winter parka", "Multiple layers (thermal + sweater)", "Thermal underwear", "Warm winter pants"},
	accessories: []string{"Warm hat, scarf, and insulated gloves"},
	footwear:    []string{"Waterproof insulated boots"},
	tips:        []string{"Minimize time outdoors", "Watch for signs of frostbite"},
}
