// Package dataset loads the charging station, transit stop and POI
// collections the planners run against, either from local JSON files or
// from a remote dataset host, and keeps them in a thread-safe store.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/metrics"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/report"
	"wayfinder.openmobility.org/internal/utils"
)

const (
	stationsFile = "charging_stations.json"
	stopsFile    = "transit_stops.json"
	poisFile     = "pois.json"

	baseBackoff   = 1 * time.Second
	maxBackoff    = 2 * time.Minute
	backoffFactor = 2.0
	jitterFactor  = 0.5
)

// Service loads and refreshes dataset collections into a Store.
type Service struct {
	Store      *Store
	Logger     *slog.Logger
	Client     *http.Client
	MaxRetries int

	// Optional basic auth for the remote dataset host.
	AuthUser string
	AuthPass string
}

func NewService(store *Store, logger *slog.Logger, client *http.Client) *Service {
	return &Service{
		Store:      store,
		Logger:     logger,
		Client:     client,
		MaxRetries: 3,
	}
}

// The dataset files carry their records under a single top-level key,
// matching the published dataset layout.
type stationsDocument struct {
	Stations []models.ChargingStation `json:"charging_stations"`
}

type stopsDocument struct {
	Stops []models.TransitStop `json:"transit_stops"`
}

type poisDocument struct {
	POIs []models.POI `json:"pois"`
}

// LoadFromDir loads every dataset collection found in dir. A missing
// file leaves the corresponding collection untouched and is only logged;
// a file that exists but does not parse is an error.
func (s *Service) LoadFromDir(dir string) error {
	if err := loadFile(filepath.Join(dir, stationsFile), s.Logger, func(data []byte) error {
		var doc stationsDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		s.Store.SetStations(doc.Stations)
		return nil
	}); err != nil {
		return err
	}

	if err := loadFile(filepath.Join(dir, stopsFile), s.Logger, func(data []byte) error {
		var doc stopsDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		s.Store.SetStops(doc.Stops)
		return nil
	}); err != nil {
		return err
	}

	if err := loadFile(filepath.Join(dir, poisFile), s.Logger, func(data []byte) error {
		var doc poisDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		s.Store.SetPOIs(doc.POIs)
		return nil
	}); err != nil {
		return err
	}

	s.logAndRecordCounts("directory", dir)
	return nil
}

func loadFile(path string, logger *slog.Logger, apply func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Dataset file not present, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}
	if err := apply(data); err != nil {
		err = fmt.Errorf("failed to parse dataset file %s: %w", path, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("dataset_file", filepath.Base(path)),
			Level: sentry.LevelError,
		})
		return err
	}
	return nil
}

// LoadFromURL fetches all three collections from the dataset host at
// baseURL. Each collection is fetched independently; the first failure
// aborts the load so the store is never left with a partially refreshed
// view of a broken host.
func (s *Service) LoadFromURL(ctx context.Context, baseURL string) error {
	var stationsDoc stationsDocument
	if err := s.fetchCollection(ctx, baseURL, stationsFile, &stationsDoc); err != nil {
		return err
	}
	var stopsDoc stopsDocument
	if err := s.fetchCollection(ctx, baseURL, stopsFile, &stopsDoc); err != nil {
		return err
	}
	var poisDoc poisDocument
	if err := s.fetchCollection(ctx, baseURL, poisFile, &poisDoc); err != nil {
		return err
	}

	s.Store.SetStations(stationsDoc.Stations)
	s.Store.SetStops(stopsDoc.Stops)
	s.Store.SetPOIs(poisDoc.POIs)

	s.logAndRecordCounts("remote", baseURL)
	return nil
}

func (s *Service) fetchCollection(ctx context.Context, baseURL, name string, out interface{}) error {
	url := baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	if s.AuthUser != "" {
		req.SetBasicAuth(s.AuthUser, s.AuthPass)
	}

	resp, err := doWithBackoff(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		err = fmt.Errorf("failed to fetch dataset collection from %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("dataset_file", name),
			ExtraContext: map[string]interface{}{
				"url": url,
			},
			Level: sentry.LevelError,
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response status %d when fetching dataset from %s", resp.StatusCode, url)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("dataset_file", name),
			ExtraContext: map[string]interface{}{
				"url":    url,
				"status": resp.Status,
			},
		})
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read dataset response body from %s: %w", url, err)
		report.ReportError(err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		err = fmt.Errorf("failed to parse dataset payload from %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("dataset_file", name),
		})
		return err
	}
	return nil
}

// RefreshPeriodically re-fetches the remote dataset at the given
// interval until the context is cancelled. Failures are logged and
// reported; the previous snapshot stays in place.
func (s *Service) RefreshPeriodically(ctx context.Context, baseURL string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("Stopping dataset refresh routine")
			return
		case <-ticker.C:
			s.Logger.Info("Refreshing dataset", "url", baseURL)
			if err := s.LoadFromURL(ctx, baseURL); err != nil {
				s.Logger.Error("Dataset refresh failed", "url", baseURL, "error", err)
			}
		}
	}
}

func (s *Service) logAndRecordCounts(source, location string) {
	stations, stops, pois := s.Store.Counts()
	s.Logger.Info("Dataset loaded",
		"source", source, "location", location,
		"charging_stations", stations, "transit_stops", stops, "pois", pois)
	metrics.DatasetRecords.WithLabelValues("charging_stations").Set(float64(stations))
	metrics.DatasetRecords.WithLabelValues("transit_stops").Set(float64(stops))
	metrics.DatasetRecords.WithLabelValues("pois").Set(float64(pois))
	s.logCoverage()
}

// logCoverage reports the geographic spread of the loaded records: the
// bounding box of every coordinate and how many S2 cells the records
// fall into. A load whose box or cell count collapses to almost nothing
// usually means a broken dataset file.
func (s *Service) logCoverage() {
	points := make([]models.Coordinate, 0)
	for _, st := range s.Store.Stations() {
		points = append(points, st.Location)
	}
	for _, st := range s.Store.Stops() {
		points = append(points, st.Location)
	}
	for _, p := range s.Store.POIs() {
		points = append(points, p.Location)
	}
	if len(points) == 0 {
		return
	}

	bbox, err := geo.ComputeBoundingBox(points)
	if err != nil {
		return
	}
	clusters := geo.ClusterCoordinates(points)
	s.Logger.Info("Dataset coverage",
		"min_lat", bbox.MinLat, "max_lat", bbox.MaxLat,
		"min_lon", bbox.MinLon, "max_lon", bbox.MaxLon,
		"s2_cells", len(clusters))
}

// doWithBackoff executes the request, retrying transient failures
// (transport errors and 5xx responses) with exponential backoff and
// jitter. The caller owns the response body of a successful attempt.
func doWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	backoff := baseBackoff
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Float64() * float64(backoff) * jitterFactor)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
			backoff = time.Duration(float64(backoff) * backoffFactor)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			resp.Body.Close()
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}
