package clothing

import "strings"

// TierFor selects the temperature band for a Celsius value. Lower bounds are inclusive.
func TierFor(celsius float64) Tier {
	return ruleFor(celsius).tier
}

func ruleFor(celsius float64) tierRule {
	for _, rule := range tierRules {
		if celsius >= rule.minCelsius {
			return rule
		}
	}
	return freezingRule
}

// Recommend builds the outfit advice for a weather condition (e.g. "Rain", "Clear")
// and a Celsius temperature. Unknown conditions only get the temperature based advice.
func Recommend(condition string, celsius float64) Recommendation {
	rule := ruleFor(celsius)
	rec := Recommendation{
		Outfit:      clone(rule.outfit),
		Accessories: clone(rule.accessories),
		Footwear:    clone(rule.footwear),
		Tips:        clone(rule.tips),
	}

	switch strings.ToLower(condition) {
	case "rain", "drizzle":
		rec.Accessories = append(rec.Accessories, "Umbrella")
		rec.Outfit = prepend(rec.Outfit, "Waterproof jacket or raincoat")
		rec.Footwear = []string{"Waterproof shoes or rain boots"}
		rec.Tips = append(rec.Tips, "Stay dry to avoid getting cold")
	case "thunderstorm":
		rec.Accessories = append(rec.Accessories, "Umbrella (be cautious of lightning)")
		rec.Outfit = prepend(rec.Outfit, "Waterproof jacket")
		rec.Footwear = []string{"Waterproof boots with good grip"}
		rec.Tips = append(rec.Tips, "Avoid open areas during storms", "Stay indoors if possible")
	case "snow":
		rec.Accessories = append(rec.Accessories, "Waterproof gloves", "Warm hat that covers ears")
		rec.Outfit = prepend(rec.Outfit, "Waterproof winter jacket")
		rec.Footwear = []string{"Insulated waterproof boots with good traction"}
		rec.Tips = append(rec.Tips, "Layer up and stay dry", "Watch for icy conditions")
	case "mist", "fog", "haze":
		rec.Accessories = append(rec.Accessories, "Light jacket (visibility may be low)")
		rec.Tips = append(rec.Tips, "Drive carefully - reduced visibility", "Wear bright colors for visibility")
	case "clear":
		if celsius >= 25 {
			rec.Accessories = append(rec.Accessories, "Sunglasses are essential")
			rec.Tips = append(rec.Tips, "Great day to be outside!")
		}
	case "clouds":
		rec.Tips = append(rec.Tips, "Comfortable weather for any activity")
	}

	return rec
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func prepend(items []string, item string) []string {
	out := make([]string, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
