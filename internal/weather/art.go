package weather

import (
	"strings"

	"github.com/i474232898/weather-cli/internal/common"
)

// Art patterns keyed by condition group. Each block is five lines wide
// enough to sit beside the text column.
var artPatterns = map[string][]string{
	"clear_day": {
		`    \   |   /    `,
		`     .-.-.-.     `,
		`  .- (  ☀️  ) -. `,
		`     '-'-'-'     `,
		`    /   |   \    `,
	},
	"clear_night": {
		`     *   *       `,
		`   *             `,
		`       🌙        `,
		`   *        *    `,
		`     *   *       `,
	},
	"few_clouds_day": {
		`    \  |  /      `,
		` .-.  ☀️  .-.    `,
		`(   ☁️☁️☁️   )   `,
		` '-'     '-'     `,
		`                 `,
	},
	"few_clouds_night": {
		`  *   🌙    *   `,
		` .-.      .-.   `,
		`(   ☁️☁️☁️   )  `,
		` '-'     '-'    `,
		`   *        *   `,
	},
	"scattered_clouds": {
		`     .-.-.       `,
		`   ☁️(     )☁️  `,
		`  ( ☁️☁️☁️☁️ )  `,
		`   '-☁️☁️☁️-'   `,
		`     '-'-'       `,
	},
	"broken_clouds": {
		`   ☁️☁️☁️☁️☁️    `,
		` ☁️☁️☁️☁️☁️☁️☁️  `,
		`☁️☁️☁️☁️☁️☁️☁️☁️ `,
		` ☁️☁️☁️☁️☁️☁️☁️  `,
		`   ☁️☁️☁️☁️☁️    `,
	},
	"shower_rain": {
		`     .-.-.       `,
		`   ☁️(     )☁️  `,
		`  ( ☁️☁️☁️☁️ )  `,
		`   '☔☔☔☔☔'  `,
		`    💧💧💧💧     `,
	},
	"rain_day": {
		`    \  |  /      `,
		` .-.  ☀️  .-.    `,
		`(   ☁️☁️☁️   )   `,
		`  '🌧️🌧️🌧️🌧️'  `,
		`   💧💧💧💧      `,
	},
	"rain_night": {
		`     .-.-.       `,
		`   ☁️(     )☁️  `,
		`  ( ☁️☁️☁️☁️ )  `,
		`  '🌧️🌧️🌧️🌧️'  `,
		`   💧💧💧💧      `,
	},
	"thunderstorm": {
		`   ☁️☁️☁️☁️☁️    `,
		` ☁️☁️⛈️⛈️☁️☁️   `,
		`☁️⚡☁️☁️⚡☁️☁️   `,
		` '🌧️⚡🌧️⚡🌧️'  `,
		`   💧⚡💧⚡💧    `,
	},
	"snow": {
		`     .-.-.       `,
		`   ☁️(     )☁️  `,
		`  ( ☁️☁️☁️☁️ )  `,
		`   '❄️❄️❄️❄️'   `,
		`    ❄️❄️❄️❄️     `,
	},
	"mist": {
		`  ≋≋≋≋≋≋≋≋≋≋≋≋   `,
		` ≋≋≋≋≋≋≋≋≋≋≋≋≋≋  `,
		`≋≋≋≋≋≋≋≋≋≋≋≋≋≋≋≋ `,
		` ≋≋≋≋≋≋≋≋≋≋≋≋≋≋  `,
		`  ≋≋≋≋≋≋≋≋≋≋≋≋   `,
	},
	"default": {
		`     ????        `,
		`   ????????      `,
		` ????????????    `,
		`   ????????      `,
		`     ????        `,
	},
}

// iconArt maps OpenWeatherMap icon codes to patterns.
var iconArt = map[string][]string{
	"01d": artPatterns["clear_day"],
	"01n": artPatterns["clear_night"],
	"02d": artPatterns["few_clouds_day"],
	"02n": artPatterns["few_clouds_night"],
	"03d": artPatterns["scattered_clouds"],
	"03n": artPatterns["scattered_clouds"],
	"04d": artPatterns["broken_clouds"],
	"04n": artPatterns["broken_clouds"],
	"09d": artPatterns["shower_rain"],
	"09n": artPatterns["shower_rain"],
	"10d": artPatterns["rain_day"],
	"10n": artPatterns["rain_night"],
	"11d": artPatterns["thunderstorm"],
	"11n": artPatterns["thunderstorm"],
	"13d": artPatterns["snow"],
	"13n": artPatterns["snow"],
	"50d": artPatterns["mist"],
	"50n": artPatterns["mist"],
}

// Art returns the ASCII art block for an icon code, falling back to a
// description match and then to the placeholder block.
func Art(icon, description string) []string {
	if lines, ok := iconArt[icon]; ok {
		return lines
	}
	if lines, ok := iconArt[iconFromDescription(description)]; ok {
		return lines
	}
	return artPatterns["default"]
}

// iconFromDescription guesses an icon code when the API omits one.
func iconFromDescription(description string) string {
	d := strings.ToLower(description)
	switch {
	case common.HasAny(d, "thunder", "storm"):
		return "11d"
	case common.HasAny(d, "snow", "sleet"):
		return "13d"
	case common.HasAny(d, "drizzle", "shower"):
		return "09d"
	case common.HasAny(d, "rain"):
		return "10d"
	case common.HasAny(d, "mist", "fog", "haze", "smoke"):
		return "50d"
	case common.HasAny(d, "overcast", "broken"):
		return "04d"
	case common.HasAny(d, "scattered"):
		return "03d"
	case common.HasAny(d, "cloud"):
		return "02d"
	case common.HasAny(d, "clear", "sun"):
		return "01d"
	default:
		return ""
	}
}
