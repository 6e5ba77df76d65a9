package weather

import "github.com/LRGuess/weatherbot/internal/domain"

// KelvinToCelsius converts a canonical Kelvin temperature to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// CelsiusToFahrenheit converts Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// InUnit converts a canonical Kelvin temperature to the display unit.
// This is the single conversion point; callers must not convert again.
func InUnit(k float64, u domain.Unit) float64 {
	c := KelvinToCelsius(k)
	if u == domain.UnitFahrenheit {
		return CelsiusToFahrenheit(c)
	}
	return c
}
