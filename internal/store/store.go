// Package store persists control records per framework and assembles
// read-only snapshots for the correlation engine.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanolivertroy/crosswalk/internal/grc"
	"github.com/ethanolivertroy/crosswalk/internal/model"
)

var (
	// ErrUnknownFramework is returned for frameworks outside the known set
	ErrUnknownFramework = errors.New("unknown framework")
	// ErrNotFound is returned when a framework has no stored records
	ErrNotFound = errors.New("framework not found")
	// ErrReadOnly is returned by stores that cannot be written
	ErrReadOnly = errors.New("store is read-only")
)

// Repository loads and saves control records one framework at a time.
// Implementations return copies; callers may modify what they get back.
type Repository interface {
	Frameworks(ctx context.Context) ([]model.Framework, error)
	Load(ctx context.Context, fw model.Framework) ([]model.ControlRecord, error)
	Save(ctx context.Context, fw model.Framework, records []model.ControlRecord) error
}

// Known reports whether fw is the Master List or a canonical framework
func Known(fw model.Framework) bool {
	if fw == model.FrameworkMasterList {
		return true
	}
	return fw.Rank() < len(model.CanonicalFrameworks)
}

func checkFramework(fw model.Framework) error {
	if !Known(fw) {
		return fmt.Errorf("%w: %q", ErrUnknownFramework, fw)
	}
	return nil
}

// stamp fills in the framework on records that omit it
func stamp(fw model.Framework, records []model.ControlRecord) []model.ControlRecord {
	for i := range records {
		if records[i].Framework == "" {
			records[i].Framework = fw
		}
	}
	return records
}

// Snapshot loads the Master List and every other stored framework
func Snapshot(ctx context.Context, repo Repository) (grc.Snapshot, error) {
	fws, err := repo.Frameworks(ctx)
	if err != nil {
		return grc.Snapshot{}, fmt.Errorf("listing frameworks: %w", err)
	}

	snap := grc.Snapshot{Candidates: make(map[model.Framework][]model.ControlRecord)}
	haveMaster := false
	for _, fw := range fws {
		records, err := repo.Load(ctx, fw)
		if err != nil {
			return grc.Snapshot{}, fmt.Errorf("loading %s: %w", fw, err)
		}
		if fw == model.FrameworkMasterList {
			snap.Master = records
			haveMaster = true
			continue
		}
		snap.Candidates[fw] = records
	}
	if !haveMaster {
		return grc.Snapshot{}, fmt.Errorf("%s: %w", model.FrameworkMasterList, ErrNotFound)
	}
	return snap, nil
}
