package clothing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierForBoundaries(t *testing.T) {
	tests := []struct {
		celsius float64
		tier    Tier
	}{
		{45, TierHot},
		{30, TierHot},
		{29.999, TierWarm},
		{25, TierWarm},
		{24.5, TierMild},
		{20, TierMild},
		{15, TierCool},
		{14.99, TierCold},
		{10, TierCold},
		{0, TierVeryCold},
		{-0.001, TierFreezing},
		{-40, TierFreezing},
		{math.Inf(1), TierHot},
		{math.Inf(-1), TierFreezing},
		{math.NaN(), TierFreezing},
	}
	for _, tc := range tests {
		require.Equal(t, tc.tier, TierFor(tc.celsius), "celsius %v", tc.celsius)
	}
}

func TestRecommendUnknownConditionUsesTierOnly(t *testing.T) {
	got := Recommend("Tornado", 22)
	require.Equal(t, Recommendation{
		Outfit:      []string{"Long-sleeve shirt or light sweater", "Jeans or light pants"},
		Accessories: []string{},
		Footwear:    []string{"Sneakers or casual shoes"},
		Tips:        []string{"Great weather for walking"},
	}, got)
}

func TestRecommendRainAtTwelve(t *testing.T) {
	got := Recommend("Rain", 12)
	require.Equal(t, "Waterproof jacket or raincoat", got.Outfit[0])
	require.Equal(t, []string{"Waterproof jacket or raincoat", "Warm jacket or coat", "Sweater or hoodie", "Long pants or jeans"}, got.Outfit)
	require.Equal(t, []string{"Waterproof shoes or rain boots"}, got.Footwear)
	require.Equal(t, []string{"Scarf and beanie", "Umbrella"}, got.Accessories)
	require.Equal(t, []string{"Layer up for warmth", "Stay dry to avoid getting cold"}, got.Tips)
}

func TestRecommendClearAndWarm(t *testing.T) {
	got := Recommend("Clear", 28)
	require.Contains(t, got.Tips, "Perfect weather for outdoor activities")
	require.Contains(t, got.Tips, "Great day to be outside!")
	require.Equal(t, []string{"Sunglasses", "Sunglasses are essential"}, got.Accessories)
}

func TestRecommendClearBelowThresholdHasNoOverlay(t *testing.T) {
	got := Recommend("clear", 24.9)
	require.Equal(t, Recommend("unknown", 24.9), got)
}

func TestRecommendFootwearReplacement(t *testing.T) {
	tests := []struct {
		condition string
		footwear  []string
	}{
		{"rain", []string{"Waterproof shoes or rain boots"}},
		{"DRIZZLE", []string{"Waterproof shoes or rain boots"}},
		{"Thunderstorm", []string{"Waterproof boots with good grip"}},
		{"Snow", []string{"Insulated waterproof boots with good traction"}},
	}
	for _, celsius := range []float64{35, 27, 21, 16, 11, 5, -12} {
		for _, tc := range tests {
			got := Recommend(tc.condition, celsius)
			require.Equal(t, tc.footwear, got.Footwear, "%s at %v", tc.condition, celsius)
		}
	}
}

func TestRecommendThunderstorm(t *testing.T) {
	got := Recommend("Thunderstorm", 18)
	require.Equal(t, "Waterproof jacket", got.Outfit[0])
	require.Equal(t, []string{"Light scarf (optional)", "Umbrella (be cautious of lightning)"}, got.Accessories)
	require.Equal(t, []string{"Perfect for layering", "Avoid open areas during storms", "Stay indoors if possible"}, got.Tips)
}

func TestRecommendSnowBelowFreezing(t *testing.T) {
	got := Recommend("Snow", -5)
	require.Equal(t, []string{"Waterproof winter jacket", "Heavy winter parka", "Multiple layers (thermal + sweater)", "Thermal underwear", "Warm winter pants"}, got.Outfit)
	require.Equal(t, []string{"Warm hat, scarf, and insulated gloves", "Waterproof gloves", "Warm hat that covers ears"}, got.Accessories)
	require.Equal(t, []string{"Minimize time outdoors", "Watch for signs of frostbite", "Layer up and stay dry", "Watch for icy conditions"}, got.Tips)
}

func TestRecommendLowVisibilityKeepsFootwear(t *testing.T) {
	for _, condition := range []string{"Mist", "fog", "Haze"} {
		got := Recommend(condition, 8)
		require.Equal(t, []string{"Insulated boots"}, got.Footwear)
		require.Contains(t, got.Accessories, "Light jacket (visibility may be low)")
		require.Equal(t, []string{"Cover exposed skin", "Stay warm and dry", "Drive carefully - reduced visibility", "Wear bright colors for visibility"}, got.Tips)
	}
}

func TestRecommendClouds(t *testing.T) {
	got := Recommend("Clouds", 31)
	require.Equal(t, []string{"Stay hydrated and seek shade", "Use sunscreen SPF 30+", "Comfortable weather for any activity"}, got.Tips)
}

func TestRecommendIsPure(t *testing.T) {
	first := Recommend("Rain", 12)
	first.Outfit[0] = "mutated"
	first.Footwear = append(first.Footwear, "extra")
	first.Tips[0] = "mutated"

	second := Recommend("Rain", 12)
	require.Equal(t, "Waterproof jacket or raincoat", second.Outfit[0])
	require.Equal(t, []string{"Waterproof shoes or rain boots"}, second.Footwear)
	require.Equal(t, "Layer up for warmth", second.Tips[0])
	require.Equal(t, second, Recommend("Rain", 12))

	// Tier tables must not be mutated by the overlays.
	require.Equal(t, []string{"Boots or warm shoes"}, Recommend("", 12).Footwear)
}

func TestRecommendMatchesConditionCaseOnly(t *testing.T) {
	require.Equal(t, Recommend("RAIN", 12), Recommend("rain", 12))
	require.Equal(t, Recommend("Tornado", 12), Recommend(" rain ", 12))
}
