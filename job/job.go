package job

import (
	"fmt"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/id"
	"github.com/muaviaUsmani/Bananas/value"
)

// DefaultMaxRetries is the retry budget given to new jobs.
const DefaultMaxRetries = 3

// maxRoutingKeyLen bounds routing keys.
const maxRoutingKeyLen = 64

// Job is a unit of work. It is written once by the submitting side; after
// that only workers and the scheduler change its stored copy.
type Job struct {
	ID           string
	Name         string
	Description  string
	Payload      value.Value
	Status       Status
	Priority     Priority
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ScheduledFor *time.Time
	Attempts     int
	MaxRetries   int
	Error        string
	RoutingKey   string
}

// New builds a pending job, or a scheduled one when WithScheduledFor is
// given. The id is assigned here and never changes.
func New(name string, payload value.Value, priority Priority, opts ...Option) (*Job, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	jobID := o.ID
	if jobID == "" {
		jobID = o.IDGenerator()
	}

	now := time.Now().UTC()
	j := &Job{
		ID:          jobID,
		Name:        name,
		Description: o.Description,
		Payload:     payload,
		Status:      StatusPending,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		MaxRetries:  o.MaxRetries,
		RoutingKey:  o.RoutingKey,
	}
	if !o.ScheduledFor.IsZero() {
		at := o.ScheduledFor.UTC()
		j.ScheduledFor = &at
		j.Status = StatusScheduled
	}

	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// IsScheduled reports whether the job carries a due time.
func (j *Job) IsScheduled() bool { return j.ScheduledFor != nil }

// Validate checks the invariants a freshly submitted job must hold.
func (j *Job) Validate() error {
	if err := id.Validate(j.ID); err != nil {
		return fmt.Errorf("%w: %w", bananas.ErrInvalidJob, err)
	}
	if j.Name == "" {
		return fmt.Errorf("%w: name is empty", bananas.ErrInvalidJob)
	}
	if k := j.Payload.Kind(); k != value.KindMap && k != value.KindNull {
		return fmt.Errorf("%w: payload must be a map or null, got %s", bananas.ErrInvalidJob, k)
	}
	if !j.Priority.IsValid() {
		return fmt.Errorf("%w: invalid priority %s", bananas.ErrInvalidJob, j.Priority)
	}
	switch j.Status {
	case StatusPending:
		if j.ScheduledFor != nil {
			return fmt.Errorf("%w: pending job must not carry scheduled_for", bananas.ErrInvalidJob)
		}
	case StatusScheduled:
		if j.ScheduledFor == nil {
			return bananas.ErrScheduleRequired
		}
	default:
		return fmt.Errorf("%w: cannot submit a job with status %s", bananas.ErrInvalidJob, j.Status)
	}
	if j.UpdatedAt.Before(j.CreatedAt) {
		return fmt.Errorf("%w: updated_at precedes created_at", bananas.ErrInvalidJob)
	}
	if j.Attempts < 0 || j.MaxRetries < 0 {
		return fmt.Errorf("%w: attempts and max_retries must not be negative", bananas.ErrInvalidJob)
	}
	if j.RoutingKey != "" {
		if err := ValidateRoutingKey(j.RoutingKey); err != nil {
			return fmt.Errorf("%w: %w", bananas.ErrInvalidJob, err)
		}
	}
	return nil
}

// ValidateRoutingKey accepts 1 to 64 ASCII letters, digits, underscores and
// hyphens.
func ValidateRoutingKey(key string) error {
	if key == "" {
		return fmt.Errorf("routing key is empty")
	}
	if len(key) > maxRoutingKeyLen {
		return fmt.Errorf("routing key too long: %d characters (max %d)", len(key), maxRoutingKeyLen)
	}
	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return fmt.Errorf("routing key %q: only letters, digits, '_' and '-' are allowed", key)
		}
	}
	return nil
}
