// Package tripdata loads, annotates and filters bike-share trip records.
package tripdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Column headers used by the city exports.
const (
	colStartTime    = "start time"
	colEndTime      = "end time"
	colStartStation = "start station"
	colEndStation   = "end station"
	colDuration     = "trip duration"
	colUserType     = "user type"
	colGender       = "gender"
	colBirthYear    = "birth year"
)

var requiredColumns = []string{
	colStartTime, colEndTime, colStartStation, colEndStation, colDuration, colUserType,
}

// Loader produces raw trip rows for a city.
type Loader interface {
	Load(city models.City) ([]models.RawTrip, error)
	Path(city models.City) (string, error)
}

// Store reads city CSV exports from a data directory.
type Store struct {
	dir   string
	files map[models.City]string
}

// NewStore creates a store over dir. files maps each city to its file name
// relative to dir.
func NewStore(dir string, files map[models.City]string) *Store {
	return &Store{dir: dir, files: files}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the backing file path for a city.
func (s *Store) Path(city models.City) (string, error) {
	if !city.Valid() {
		return "", fmt.Errorf("%w: city %q", models.ErrInvalidSelection, city)
	}
	name, ok := s.files[city]
	if !ok || name == "" {
		return "", &models.DataSourceError{City: city, Err: errors.New("no data file configured")}
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(s.dir, name), nil
}

// CityForFile returns the city whose data file has the given base name.
func (s *Store) CityForFile(name string) (models.City, bool) {
	base := filepath.Base(name)
	for city, file := range s.files {
		if filepath.Base(file) == base {
			return city, true
		}
	}
	return "", false
}

// Load reads the whole city export into memory.
func (s *Store) Load(city models.City) ([]models.RawTrip, error) {
	path, err := s.Path(city)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DataSourceError{City: city, Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	trips, err := ReadCSV(f)
	if err != nil {
		return nil, &models.DataSourceError{City: city, Path: path, Err: err}
	}

	logger.Debug("trip file read", "city", city.String(), "path", path, "rows", len(trips))
	return trips, nil
}

// ReadCSV parses a trip export. Columns are matched by header name, ignoring
// case and surrounding whitespace; unnamed columns (such as a leading row
// index) are skipped.
func ReadCSV(r io.Reader) ([]models.RawTrip, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var trips []models.RawTrip
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		// Physical line, counting blank lines and quoted newlines.
		pos, _ := reader.FieldPos(0)
		trips = append(trips, models.RawTrip{
			Line:         pos,
			StartTime:    field(record, idx, colStartTime),
			EndTime:      field(record, idx, colEndTime),
			StartStation: field(record, idx, colStartStation),
			EndStation:   field(record, idx, colEndStation),
			Duration:     field(record, idx, colDuration),
			UserType:     field(record, idx, colUserType),
			Gender:       field(record, idx, colGender),
			BirthYear:    field(record, idx, colBirthYear),
		})
	}

	return trips, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if key == "" {
			continue
		}
		idx[key] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func field(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
