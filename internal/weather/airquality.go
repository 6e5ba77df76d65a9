package weather

import "math"

// Per-pollutant concentration bands (μg/m³) mapping to index 1..5,
// following the OpenWeatherMap air-quality scale.
var (
	so2Bands  = bands(20, 80, 250, 350)
	no2Bands  = bands(40, 70, 150, 200)
	pm10Bands = bands(20, 50, 100, 200)
	pm25Bands = bands(10, 25, 50, 75)
	o3Bands   = bands(60, 100, 140, 180)
	coBands   = bands(4400, 9400, 12400, 15400)
)

type band struct{ low, high float64 }

func bands(cuts ...float64) []band {
	out := make([]band, 0, len(cuts)+1)
	low := 0.0
	for _, c := range cuts {
		out = append(out, band{low, c})
		low = c
	}
	out = append(out, band{low, math.Inf(1)})
	return out
}

func indexFor(concentration float64, bs []band) int {
	for i, b := range bs {
		if concentration >= b.low && concentration < b.high {
			return i + 1
		}
	}
	return len(bs)
}

// CompositeIndex grades each pollutant against its bands and returns the
// worst index, 1 (good) through 5 (very poor).
func CompositeIndex(c AirQuality) int {
	worst := indexFor(c.SO2, so2Bands)
	for _, idx := range []int{
		indexFor(c.NO2, no2Bands),
		indexFor(c.PM10, pm10Bands),
		indexFor(c.PM25, pm25Bands),
		indexFor(c.O3, o3Bands),
		indexFor(c.CO, coBands),
	} {
		if idx > worst {
			worst = idx
		}
	}
	return worst
}

// QualitativeName returns the labelled rating for a composite index.
func QualitativeName(index int) string {
	names := []string{"🟢 Good", "🟠 Fair", "🟡 Moderate", "🔴 Poor", "🟣 Very Poor"}
	if index < 1 || index > len(names) {
		return "Unknown"
	}
	return names[index-1]
}
