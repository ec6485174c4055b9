package beats

import "github.com/yanqian/weather-beats/internal/domain/clothing"

// Request captures the query accepted by the primary endpoint.
type Request struct {
	Lat  string `form:"lat"`
	Lon  string `form:"lon"`
	Mood string `form:"mood"`
}

// Response is serialized back to API consumers.
type Response struct {
	Weather  Weather                 `json:"weather"`
	Music    Music                   `json:"music"`
	Clothing clothing.Recommendation `json:"clothing"`
}

// Weather is the converted observation.
type Weather struct {
	Condition   string      `json:"condition"`
	Description string      `json:"description"`
	City        string      `json:"city"`
	Temperature Temperature `json:"temperature"`
	Humidity    float64     `json:"humidity"`
}

// Temperature reports the air temperature and the felt temperature.
type Temperature struct {
	Celsius    int       `json:"celsius"`
	Fahrenheit int       `json:"fahrenheit"`
	FeelsLike  FeelsLike `json:"feelsLike"`
}

// FeelsLike is the apparent temperature.
type FeelsLike struct {
	Celsius    int `json:"celsius"`
	Fahrenheit int `json:"fahrenheit"`
}

// Music is the playlist suggestion.
type Music struct {
	SuggestedGenre string `json:"suggestedGenre"`
	PlaylistURL    string `json:"playlistUrl"`
}
