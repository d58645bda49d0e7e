package config

import "github.com/j-veylop/bikeshare-dashboard-tui/internal/models"

// Default export file names, relative to DATA_DIR.
const (
	defaultChicagoFile    = "chicago.csv"
	defaultNewYorkFile    = "new_york_city.csv"
	defaultWashingtonFile = "washington.csv"
)

// cityFileEnv maps each city to the variable overriding its file name.
var cityFileEnv = map[models.City]struct {
	key      string
	fallback string
}{
	models.CityChicago:    {key: "CHICAGO_FILE", fallback: defaultChicagoFile},
	models.CityNewYork:    {key: "NEW_YORK_CITY_FILE", fallback: defaultNewYorkFile},
	models.CityWashington: {key: "WASHINGTON_FILE", fallback: defaultWashingtonFile},
}

// loadCityFiles resolves the data file name for every supported city.
func loadCityFiles() map[models.City]string {
	files := make(map[models.City]string, len(models.Cities))
	for _, city := range models.Cities {
		entry := cityFileEnv[city]
		files[city] = getEnvString(entry.key, entry.fallback)
	}
	return files
}
