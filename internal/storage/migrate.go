// ABOUTME: Data migration between crumb storage backends.
// ABOUTME: Copies stats snapshots and unlock records from source to destination.

package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of copied or imported records.
type MigrateSummary struct {
	Stats        int
	Achievements int
	// Skipped counts unlocks the destination already held.
	Skipped int
}

// MigrateData copies all data from src to dst. Stats rows in dst are
// overwritten; unlocks already present in dst are left alone.
func MigrateData(ctx context.Context, src, dst Store) (*MigrateSummary, error) {
	data, err := GetAllData(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	summary, err := ImportData(ctx, dst, data)
	if err != nil {
		return summary, fmt.Errorf("write destination: %w", err)
	}
	return summary, nil
}
