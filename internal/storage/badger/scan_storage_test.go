package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/ferret/internal/models"
)

func sampleScan(id string, createdAt time.Time) *models.ScanResult {
	return &models.ScanResult{
		ID:       id,
		Context:  models.ScanContext{Host: "nyaa.si", URL: "https://nyaa.si/?q=show"},
		RuleID:   "builtin-nyaa",
		RuleName: "Nyaa",
		Links: []models.LinkRecord{
			{ID: "lnk_1", URL: "magnet:?xt=urn:btih:abc", Title: "Show 01", Kind: models.LinkKindMagnet},
		},
		CreatedAt: createdAt,
	}
}

func TestScanStorage_SaveAndGet(t *testing.T) {
	storage := testManager(t).ScanStorage()
	ctx := context.Background()

	scan := sampleScan("scan-1", time.Now().UTC())
	require.NoError(t, storage.SaveScan(ctx, scan))

	loaded, err := storage.GetScan(ctx, "scan-1")
	require.NoError(t, err)
	assert.Equal(t, "builtin-nyaa", loaded.RuleID)
	require.Len(t, loaded.Links, 1)
	assert.Equal(t, "magnet:?xt=urn:btih:abc", loaded.Links[0].URL)
}

func TestScanStorage_ListNewestFirstWithLimit(t *testing.T) {
	storage := testManager(t).ScanStorage()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		scan := sampleScan(fmt.Sprintf("scan-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, storage.SaveScan(ctx, scan))
	}

	scans, err := storage.ListScans(ctx, 3)
	require.NoError(t, err)
	require.Len(t, scans, 3)
	assert.Equal(t, "scan-4", scans[0].ID)
	assert.Equal(t, "scan-3", scans[1].ID)
	assert.Equal(t, "scan-2", scans[2].ID)
}

func TestScanStorage_DeleteMissing(t *testing.T) {
	storage := testManager(t).ScanStorage()
	assert.Error(t, storage.DeleteScan(context.Background(), "absent"))
}
