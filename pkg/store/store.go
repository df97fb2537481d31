// Package store persists pipeline run reports. A report records what was
// transformed, which passes ran and the headline figures of the result,
// so repeated experiments over a benchmark suite can be compared later.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/railsmith/railsmith/pkg/netio"
)

// ErrReportNotFound is returned when the requested report does not
// exist.
var ErrReportNotFound = errors.New("report not found")

// Report is the persisted record of one pipeline run.
type Report struct {
	ID         string            `json:"id" bson:"_id"`
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
	Source     string            `json:"source,omitempty" bson:"source,omitempty"`
	SourceHash string            `json:"sourceHash" bson:"sourceHash"`
	Passes     []string          `json:"passes" bson:"passes"`
	Inputs     int               `json:"inputs" bson:"inputs"`
	Outputs    int               `json:"outputs" bson:"outputs"`
	Gates      int               `json:"gates" bson:"gates"`
	Depth      int               `json:"depth" bson:"depth"`
	AvgFanOut  float64           `json:"avgFanOut" bson:"avgFanOut"`
	ScoapSum   uint64            `json:"scoapSum,omitempty" bson:"scoapSum,omitempty"`
	Timings    map[string]int64  `json:"timingsMs,omitempty" bson:"timingsMs,omitempty"`
	Netlist    *netio.Netlist    `json:"netlist,omitempty" bson:"netlist,omitempty"`
}

// NewReport allocates a report with a fresh run ID and timestamp.
func NewReport() *Report {
	return &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Timings:   make(map[string]int64),
	}
}

// Store persists and retrieves run reports.
type Store interface {
	// Save persists a report.
	Save(ctx context.Context, r *Report) error
	// Load retrieves a report by run ID.
	Load(ctx context.Context, id string) (*Report, error)
	// List returns the most recent reports, newest first.
	List(ctx context.Context, limit int) ([]*Report, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}
