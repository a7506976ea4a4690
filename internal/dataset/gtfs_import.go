package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	remoteGtfs "github.com/jamespfennell/gtfs"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/report"
	"wayfinder.openmobility.org/internal/utils"
)

// ImportGTFSStatic downloads a GTFS static bundle (a zip archive), parses
// it and replaces the store's transit stop collection with the stops it
// contains. Stops without coordinates are dropped.
//
// GTFS stops carry no service-mode field, so the imported stops use a
// hierarchy heuristic: anything rooted in a station is treated as rail,
// everything else as a surface (bus) stop. Route labels are not imported;
// the transit planner tolerates stops without routes.
func (s *Service) ImportGTFSStatic(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := doWithBackoff(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		err = fmt.Errorf("failed to download GTFS bundle from %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("gtfs_url", url),
			Level: sentry.LevelError,
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, url)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("gtfs_url", url),
			ExtraContext: map[string]interface{}{
				"status": resp.Status,
			},
		})
		return err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read GTFS bundle response body from %s: %w", url, err)
		report.ReportError(err)
		return err
	}

	staticBundle, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		err = fmt.Errorf("failed to parse GTFS static data from %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("gtfs_url", url),
		})
		return err
	}

	stops := stopsFromStatic(staticBundle)
	staticBundle = nil // drop reference, GC can collect earlier
	s.Store.SetStops(stops)

	s.Logger.Info("GTFS bundle imported", "url", url, "stops", len(stops))
	return nil
}

// stopsFromStatic converts GTFS boardable stops (location types 0 and 1)
// into the planner's stop model.
func stopsFromStatic(staticBundle *remoteGtfs.Static) []models.TransitStop {
	stops := make([]models.TransitStop, 0, len(staticBundle.Stops))
	for _, stop := range staticBundle.Stops {
		if stop.Type != 0 && stop.Type != 1 {
			continue
		}
		if stop.Latitude == nil || stop.Longitude == nil {
			continue
		}

		mode := "bus"
		if stop.Type == 1 || (stop.Parent != nil && stop.Root().Type == 1) {
			mode = "metro"
		}

		name := stop.Id
		if stop.Name != nil && *stop.Name != "" {
			name = *stop.Name
		}

		stops = append(stops, models.TransitStop{
			ID:   stop.Id,
			Name: name,
			Type: mode,
			Location: models.Coordinate{
				Lat: *stop.Latitude,
				Lon: *stop.Longitude,
			},
		})
	}
	return stops
}
