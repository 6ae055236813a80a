package devserver

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// maxForecastDays mirrors the upstream weather provider horizon.
const maxForecastDays = 16

var cities = []city{
	{Name: "Amsterdam", Country: "NL", Lat: 52.37, Lon: 4.89},
	{Name: "Barcelona", Country: "ES", Lat: 41.39, Lon: 2.17},
	{Name: "Berlin", Country: "DE", Lat: 52.52, Lon: 13.40},
	{Name: "Lisbon", Country: "PT", Lat: 38.72, Lon: -9.14},
	{Name: "London", Country: "GB", Lat: 51.51, Lon: -0.13},
	{Name: "Madrid", Country: "ES", Lat: 40.42, Lon: -3.70},
	{Name: "Paris", Country: "FR", Lat: 48.86, Lon: 2.35},
	{Name: "Prague", Country: "CZ", Lat: 50.08, Lon: 14.44},
	{Name: "Riga", Country: "LV", Lat: 56.95, Lon: 24.11},
	{Name: "Rome", Country: "IT", Lat: 41.90, Lon: 12.50},
	{Name: "Tallinn", Country: "EE", Lat: 59.44, Lon: 24.75},
	{Name: "Tokyo", Country: "JP", Lat: 35.68, Lon: 139.69},
	{Name: "Vienna", Country: "AT", Lat: 48.21, Lon: 16.37},
	{Name: "Vilnius", Country: "LT", Lat: 54.69, Lon: 25.28},
}

// baseCategories is packed for every trip.
var baseCategories = map[string][]string{
	"Important": {"Passport", "Medical insurance", "Money/card"},
	"Documents": {"Tickets", "Hotel booking"},
	"Hygiene":   {"Toothbrush", "Toothpaste", "Deodorant"},
	"Tech":      {"Phone", "Charger", "Power bank"},
	"Other":     {"Water bottle"},
}

var categoryOrder = []string{"Important", "Documents", "Clothes", "Hygiene", "Tech", "Other"}

func searchCities(prefix string, limit int) []city {
	prefix = strings.ToLower(prefix)
	out := make([]city, 0)
	for _, c := range cities {
		if !strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			continue
		}
		c.FullName = fmt.Sprintf("%s, %s", c.Name, c.Country)
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// forecastFor derives a stable pseudo forecast from the city name so the
// same trip always produces the same list.
func forecastFor(cityName string, start, end time.Time) []DailyForecast {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(cityName)))
	seed := h.Sum32()

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxForecastDays {
		days = maxForecastDays
	}
	out := make([]DailyForecast, 0, days)
	for i := 0; i < days; i++ {
		v := (seed >> (uint(i) % 24)) ^ uint32(i*7919)
		base := float64(int(v%35)) - 5
		cond, icon := "Clear", "01d"
		switch v % 4 {
		case 1:
			cond, icon = "Clouds", "03d"
		case 2:
			cond, icon = "Rain", "10d"
		case 3:
			if base < 2 {
				cond, icon = "Snow", "13d"
			}
		}
		out = append(out, DailyForecast{
			Date:      start.AddDate(0, 0, i).Format(dateLayout),
			TempMin:   base,
			TempMax:   base + 6,
			Condition: cond,
			Icon:      icon,
		})
	}
	return out
}

// buildList turns a forecast into the categorised packing list.
func buildList(forecast []DailyForecast) (items []string, byCategory map[string][]string, avgTemp float64, conditions []string) {
	byCategory = make(map[string][]string, len(baseCategories)+1)
	for k, v := range baseCategories {
		byCategory[k] = append([]string(nil), v...)
	}

	var sum float64
	seen := make(map[string]struct{})
	for _, d := range forecast {
		sum += (d.TempMin + d.TempMax) / 2
		seen[d.Condition] = struct{}{}
	}
	if len(forecast) > 0 {
		avgTemp = math.Round(sum/float64(len(forecast))*10) / 10
	}
	for c := range seen {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	var clothes []string
	switch {
	case avgTemp < 5:
		clothes = []string{"Warm jacket", "Hat", "Scarf", "Gloves", "Thermal underwear", "Winter boots"}
	case avgTemp < 18:
		clothes = []string{"Light jacket", "Sweater", "Jeans", "Sneakers"}
	default:
		clothes = []string{"T-shirts", "Shorts", "Sunglasses", "Light shoes"}
	}
	if _, ok := seen["Rain"]; ok {
		clothes = append(clothes, "Umbrella/raincoat", "Waterproof shoes")
	}
	byCategory["Clothes"] = clothes

	for _, k := range categoryOrder {
		items = append(items, byCategory[k]...)
	}
	return items, byCategory, avgTemp, conditions
}
