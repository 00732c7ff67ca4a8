// Package submission describes the record handed to the persistence backend
// when a questionnaire is completed, how its denormalized summary fields are
// derived from the answers, and the Gateway contract backends implement.
package submission

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-pmsform/pkg/answers"
)

// ErrNotFound is returned by lookups for unknown record ids.
var ErrNotFound = errors.New("submission: record not found")

// Record is the payload persisted for one completed questionnaire.
type Record struct {
	FormData             answers.Map `json:"form_data"`
	SubmitterName        string      `json:"submitter_name"`
	TargetTimeline       string      `json:"target_timeline"`
	DeploymentModel      string      `json:"deployment_model"`
	MultiPropertySupport bool        `json:"multi_property_support"`
	WhiteLabeled         bool        `json:"white_labeled"`
}

// StoredRecord is a Record after the backend accepted it.
type StoredRecord struct {
	ID        string    `json:"id"`
	Record    Record    `json:"record"`
	CreatedAt time.Time `json:"created_at"`
}

// Gateway persists completed records.
type Gateway interface {
	Create(ctx context.Context, record Record) (StoredRecord, error)
}

// Reader is implemented by gateways that can read records back.
type Reader interface {
	Get(ctx context.Context, id string) (StoredRecord, error)
	List(ctx context.Context, limit int) ([]StoredRecord, error)
}

// GatewayFunc adapts a function into a Gateway.
type GatewayFunc func(ctx context.Context, record Record) (StoredRecord, error)

// Create calls fn.
func (fn GatewayFunc) Create(ctx context.Context, record Record) (StoredRecord, error) {
	return fn(ctx, record)
}
