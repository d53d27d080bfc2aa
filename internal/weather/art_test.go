package weather

import (
	"reflect"
	"testing"
)

func TestArtByIcon(t *testing.T) {
	if !reflect.DeepEqual(Art("01d", ""), artPatterns["clear_day"]) {
		t.Fatal("expected the clear day pattern for 01d")
	}
	if !reflect.DeepEqual(Art("11n", ""), artPatterns["thunderstorm"]) {
		t.Fatal("expected the thunderstorm pattern for 11n")
	}
	if !reflect.DeepEqual(Art("50d", ""), artPatterns["mist"]) {
		t.Fatal("expected the mist pattern for 50d")
	}
}

func TestArtFallsBackToDescription(t *testing.T) {
	if !reflect.DeepEqual(Art("", "Heavy Snow"), artPatterns["snow"]) {
		t.Fatal("expected the snow pattern from the description")
	}
	if !reflect.DeepEqual(Art("", "light rain"), artPatterns["rain_day"]) {
		t.Fatal("expected the rain pattern from the description")
	}
}

func TestArtUnknown(t *testing.T) {
	if !reflect.DeepEqual(Art("99x", "volcanic ash"), artPatterns["default"]) {
		t.Fatal("expected the placeholder pattern for unknown conditions")
	}
}

func TestArtBlocksHaveFiveLines(t *testing.T) {
	for name, lines := range artPatterns {
		if len(lines) != 5 {
			t.Fatalf("pattern %s has %d lines, want 5", name, len(lines))
		}
	}
}

func TestIconFromDescription(t *testing.T) {
	cases := map[string]string{
		"Thunderstorm with rain": "11d",
		"sleet showers":          "13d",
		"drizzle":                "09d",
		"moderate rain":          "10d",
		"fog":                    "50d",
		"overcast clouds":        "04d",
		"scattered clouds":       "03d",
		"few clouds":             "02d",
		"clear sky":              "01d",
		"sandstorm?":             "11d",
		"":                       "",
	}
	for description, want := range cases {
		if got := iconFromDescription(description); got != want {
			t.Fatalf("%q: expected %q, got %q", description, want, got)
		}
	}
}
