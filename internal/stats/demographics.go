package stats

import "github.com/j-veylop/bikeshare-dashboard-tui/internal/models"

// UnknownUserType labels trips whose user type column is blank, so the
// user-type table always sums to the number of trips.
const UnknownUserType = "Unknown"

// Demographics returns the user-type breakdown and, when the dataset carries
// them, gender counts and birth-year extremes.
//
// With hasDemographics false the gender and birth-year fields of the trips
// are not read and the result has Available set to false.
func Demographics(trips []models.Trip, hasDemographics bool) (models.DemographicStats, error) {
	if len(trips) == 0 {
		return models.DemographicStats{}, models.ErrEmptyResult
	}

	userTypes := NewCounter[string]()
	for _, t := range trips {
		ut := t.UserType
		if ut == "" {
			ut = UnknownUserType
		}
		userTypes.Add(ut)
	}

	result := models.DemographicStats{
		Total:     len(trips),
		UserTypes: toCounts(userTypes),
		Available: hasDemographics,
	}
	if !hasDemographics {
		return result, nil
	}

	genders := NewCounter[string]()
	years := NewCounter[int]()
	for _, t := range trips {
		if t.Gender != "" {
			genders.Add(t.Gender)
		}
		if t.HasBirthYear {
			years.Add(t.BirthYear)
		}
	}
	result.Genders = toCounts(genders)
	result.BirthYears = birthYears(years)

	return result, nil
}

func birthYears(years *Counter[int]) *models.BirthYearStats {
	if years.Len() == 0 {
		return nil
	}

	stats := &models.BirthYearStats{}
	first := true
	for _, e := range years.Sorted() {
		stats.Known += e.Count
		if first || e.Key < stats.Earliest {
			stats.Earliest = e.Key
		}
		if first || e.Key > stats.MostRecent {
			stats.MostRecent = e.Key
		}
		first = false
	}
	stats.MostCommon, _, _ = years.Mode()
	return stats
}

func toCounts(c *Counter[string]) []models.Count {
	sorted := c.Sorted()
	out := make([]models.Count, len(sorted))
	for i, e := range sorted {
		out[i] = models.Count{Value: e.Key, Count: e.Count}
	}
	return out
}
