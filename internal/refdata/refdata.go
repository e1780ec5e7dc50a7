package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iso_dispatch/internal/models"
)

// Hospital reference data comes from an external geo service. It is synced
// once at startup; afterwards the stored rows are the source of truth.

// Fetch retrieves the hospital list from the reference feed.
func Fetch(ctx context.Context, url string) ([]models.Hospital, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch hospitals: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch hospitals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch hospitals: feed returned %d", resp.StatusCode)
	}

	var hospitals []models.Hospital
	if err := json.NewDecoder(resp.Body).Decode(&hospitals); err != nil {
		return nil, fmt.Errorf("fetch hospitals: decode response: %w", err)
	}
	if len(hospitals) == 0 {
		return nil, fmt.Errorf("fetch hospitals: feed returned no entries")
	}
	return hospitals, nil
}

// Sync pulls the feed and upserts it into the hospitals table. When the
// feed is unreachable but reference rows already exist from a previous run,
// the service continues on the stored copy.
func Sync(ctx context.Context, db *gorm.DB, url string) error {
	hospitals, err := Fetch(ctx, url)
	if err != nil {
		var count int64
		db.Model(&models.Hospital{}).Count(&count)
		if count > 0 {
			logrus.WithError(err).Warnf("hospital feed unavailable, continuing with %d stored hospitals", count)
			return nil
		}
		return err
	}

	for _, h := range hospitals {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"lat", "lon", "tier", "type"}),
		}).Create(&h).Error
		if err != nil {
			return fmt.Errorf("sync hospitals: upsert %q: %w", h.Name, err)
		}
	}

	logrus.Infof("hospital reference data synced: %d entries", len(hospitals))
	return nil
}

// Lookup loads the reference set keyed by hospital name.
func Lookup(db *gorm.DB) (map[string]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := db.Find(&hospitals).Error; err != nil {
		return nil, fmt.Errorf("lookup hospitals: %w", err)
	}

	ref := make(map[string]models.Hospital, len(hospitals))
	for _, h := range hospitals {
		ref[h.Name] = h
	}
	return ref, nil
}
