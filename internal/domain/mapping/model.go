package mapping

import "context"

// DefaultGenre is used when no mapping exists for a condition and mood.
const DefaultGenre = "pop"

// Mapping links a weather condition and a mood to a music genre.
type Mapping struct {
	WeatherCondition string `json:"weatherCondition"`
	Mood             string `json:"mood"`
	SuggestedGenre   string `json:"suggestedGenre"`
}

// Store persists mood mappings. Lookups match condition and mood exactly.
type Store interface {
	Find(ctx context.Context, condition, mood string) (Mapping, bool, error)
	Insert(ctx context.Context, m Mapping) error
	List(ctx context.Context) ([]Mapping, error)
	Count(ctx context.Context) (int64, error)
}

// SampleMappings seeds an empty store.
var SampleMappings = []Mapping{
	{WeatherCondition: "Clear", Mood: "Happy", SuggestedGenre: "pop"},
	{WeatherCondition: "Clear", Mood: "Calm", SuggestedGenre: "indie"},
	{WeatherCondition: "Clear", Mood: "Energetic", SuggestedGenre: "electronic"},
	{WeatherCondition: "Clear", Mood: "Cozy", SuggestedGenre: "folk"},
	{WeatherCondition: "Clear", Mood: "Sad", SuggestedGenre: "indie"},
	{WeatherCondition: "Clear", Mood: "Anxious", SuggestedGenre: "ambient"},
	{WeatherCondition: "Clear", Mood: "Tired", SuggestedGenre: "lo-fi"},

	{WeatherCondition: "Clouds", Mood: "Happy", SuggestedGenre: "indie rock"},
	{WeatherCondition: "Clouds", Mood: "Calm", SuggestedGenre: "alternative"},
	{WeatherCondition: "Clouds", Mood: "Energetic", SuggestedGenre: "rock"},
	{WeatherCondition: "Clouds", Mood: "Cozy", SuggestedGenre: "indie folk"},
	{WeatherCondition: "Clouds", Mood: "Sad", SuggestedGenre: "melancholy"},
	{WeatherCondition: "Clouds", Mood: "Anxious", SuggestedGenre: "chill"},
	{WeatherCondition: "Clouds", Mood: "Tired", SuggestedGenre: "acoustic"},

	{WeatherCondition: "Rain", Mood: "Happy", SuggestedGenre: "jazz"},
	{WeatherCondition: "Rain", Mood: "Calm", SuggestedGenre: "rain sounds"},
	{WeatherCondition: "Rain", Mood: "Energetic", SuggestedGenre: "drum and bass"},
	{WeatherCondition: "Rain", Mood: "Cozy", SuggestedGenre: "coffee shop"},
	{WeatherCondition: "Rain", Mood: "Sad", SuggestedGenre: "sad songs"},
	{WeatherCondition: "Rain", Mood: "Anxious", SuggestedGenre: "meditation"},
	{WeatherCondition: "Rain", Mood: "Tired", SuggestedGenre: "sleep music"},

	{WeatherCondition: "Snow", Mood: "Happy", SuggestedGenre: "christmas"},
	{WeatherCondition: "Snow", Mood: "Calm", SuggestedGenre: "winter chill"},
	{WeatherCondition: "Thunderstorm", Mood: "Energetic", SuggestedGenre: "metal"},
	{WeatherCondition: "Drizzle", Mood: "Calm", SuggestedGenre: "lo-fi hip hop"},
}
