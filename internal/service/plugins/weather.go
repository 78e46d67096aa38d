package plugins

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const weatherPluginName = "weather"

const unknownLocation = "Unknown Location"

var weatherIntentRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)weather.*?in\s+\w+`),
	regexp.MustCompile(`(?i)temperature.*?in\s+\w+`),
	regexp.MustCompile(`(?i)how.*?(hot|cold|warm).*?in\s+\w+`),
	regexp.MustCompile(`(?i)forecast.*?for\s+\w+`),
	regexp.MustCompile(`(?i)climate.*?in\s+\w+`),
}

var weatherKeywords = []string{"weather", "temperature", "forecast", "climate", "rain", "sunny", "cloudy"}

func weatherIntent(message string) bool {
	for _, re := range weatherIntentRes {
		if re.MatchString(message) {
			return true
		}
	}
	return containsAny(message, weatherKeywords)
}

// Ordered alternatives for extracting the place name; first match wins.
var placeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)weather.*?in\s+([a-zA-Z ]+)(?:\?|$)`),
	regexp.MustCompile(`(?i)temperature.*?in\s+([a-zA-Z ]+)(?:\?|$)`),
	regexp.MustCompile(`(?i)forecast.*?for\s+([a-zA-Z ]+)(?:\?|$)`),
	regexp.MustCompile(`(?i)how.*?in\s+([a-zA-Z ]+)(?:\?|$)`),
}

type conditions struct {
	temp      string
	condition string
	humidity  string
	windSpeed string
}

// Canned observations keyed by lowercased city. The contract only requires a
// plausible answer; a real weather API can replace this behind the same
// Execute signature.
var weatherTable = map[string]conditions{
	"bangalore": {temp: "24°C", condition: "Partly cloudy with light breeze", humidity: "68%", windSpeed: "12 km/h"},
	"mumbai":    {temp: "29°C", condition: "Humid and partly sunny", humidity: "78%", windSpeed: "8 km/h"},
	"delhi":     {temp: "21°C", condition: "Hazy with moderate visibility", humidity: "82%", windSpeed: "6 km/h"},
	"chennai":   {temp: "31°C", condition: "Hot and humid", humidity: "71%", windSpeed: "14 km/h"},
	"pune":      {temp: "26°C", condition: "Pleasant with clear skies", humidity: "59%", windSpeed: "10 km/h"},
	"hyderabad": {temp: "27°C", condition: "Warm with scattered clouds", humidity: "64%", windSpeed: "9 km/h"},
	"kolkata":   {temp: "28°C", condition: "Muggy with high humidity", humidity: "85%", windSpeed: "7 km/h"},
}

var defaultConditions = conditions{
	temp:      "25°C",
	condition: "Moderate conditions",
	humidity:  "65%",
	windSpeed: "8 km/h",
}

// Weather reports canned conditions for a city mentioned in the message.
type Weather struct{}

func NewWeather() *Weather {
	return &Weather{}
}

func (w *Weather) Name() string { return weatherPluginName }

func (w *Weather) Description() string {
	return "Get current weather information for cities"
}

func (w *Weather) Execute(ctx context.Context, input string) (string, error) {
	city := extractCity(input)

	observed, ok := weatherTable[strings.ToLower(city)]
	if !ok {
		observed = defaultConditions
	}

	return fmt.Sprintf("Current conditions in %s: %s, %s. Humidity at %s, wind %s.",
		city, observed.temp, observed.condition, observed.humidity, observed.windSpeed), nil
}

func extractCity(input string) string {
	for _, re := range placeRes {
		if groups := re.FindStringSubmatch(input); groups != nil {
			return strings.TrimSpace(groups[1])
		}
	}
	return unknownLocation
}
