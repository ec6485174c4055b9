package weather

import (
	"context"

	"github.com/yanqian/weather-beats/pkg/util"
)

const kelvinOffset = 273.15

// Temperature holds the Celsius and Fahrenheit readings derived from a single source value.
// The zero value reads 0 °C / 0 °F and is only meaningful as "unset".
type Temperature struct {
	celsius    int
	fahrenheit int
}

// FromKelvin converts an absolute reading. Fahrenheit is derived from the rounded Celsius value.
func FromKelvin(kelvin float64) Temperature {
	return FromCelsius(kelvin - kelvinOffset)
}

// FromCelsius builds a Temperature from a (possibly fractional) Celsius value.
func FromCelsius(celsius float64) Temperature {
	c := util.RoundHalfUp(celsius)
	return Temperature{
		celsius:    c,
		fahrenheit: util.RoundHalfUp(float64(c)*9/5 + 32),
	}
}

// Celsius returns the rounded Celsius reading.
func (t Temperature) Celsius() int { return t.celsius }

// Fahrenheit returns the rounded Fahrenheit reading.
func (t Temperature) Fahrenheit() int { return t.fahrenheit }

// Reading is the raw observation returned by a Provider, temperatures in Kelvin.
type Reading struct {
	Condition       string
	Description     string
	City            string
	TempKelvin      float64
	FeelsLikeKelvin float64
	Humidity        float64
}

// Observation is a Reading with converted temperatures.
type Observation struct {
	Condition   string
	Description string
	City        string
	Temperature Temperature
	FeelsLike   Temperature
	Humidity    float64
}

// Observe converts a provider reading.
func Observe(r Reading) Observation {
	return Observation{
		Condition:   r.Condition,
		Description: r.Description,
		City:        r.City,
		Temperature: FromKelvin(r.TempKelvin),
		FeelsLike:   FromKelvin(r.FeelsLikeKelvin),
		Humidity:    r.Humidity,
	}
}

// Provider fetches current conditions for a coordinate pair.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64) (Reading, error)
}
