package display

import (
	"math"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

const defaultEmoji = "🌤️"

var weatherEmojis = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
}

// WindDirection converts a wind bearing in degrees to one of the 16 compass points.
// Each point covers a 22.5° sector centred on its bearing; any real input wraps around the circle.
func WindDirection(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return compassPoints[0]
	}
	idx := math.Mod(math.RoundToEven(degrees/22.5), 16)
	if idx < 0 {
		idx += 16
	}
	return compassPoints[int(idx)]
}

// WeatherEmoji returns the glyph for an OpenWeatherMap condition keyword such as "Rain".
func WeatherEmoji(condition string) string {
	if emoji, ok := weatherEmojis[condition]; ok {
		return emoji
	}
	return defaultEmoji
}

// Round rounds a float to the given number of decimal places.
// The exact binary value is rounded, ties go to the even digit: Round(0.15, 1) == 0.1, Round(12.25, 1) == 12.2.
func Round(value float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', places, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}

// Capitalize upper-cases the first letter and lower-cases the rest: "LIGHT rain" -> "Light rain".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}
