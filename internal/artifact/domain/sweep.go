package domain

import (
	"time"
)

// MinOrphanAge is the smallest max age a removing sweep accepts. An upload writes its
// envelope before registering it, so a younger unreferenced envelope may be in flight.
const MinOrphanAge = time.Hour

// Orphan is a stored envelope that no registered artifact references.
type Orphan struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// SweepResult summarizes one orphan sweep.
type SweepResult struct {
	Scanned int      `json:"scanned"`
	Orphans []Orphan `json:"orphans"`
	Removed int      `json:"removed"`
	DryRun  bool     `json:"dry_run"`
}
