package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/value"
)

// wireJob is the JSON document stored under a job key. Field order is part
// of the contract shared with workers and SDKs in other languages.
type wireJob struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Payload      value.Value `json:"payload"`
	Status       string      `json:"status"`
	Priority     string      `json:"priority"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
	Attempts     *int        `json:"attempts"`
	MaxRetries   *int        `json:"max_retries"`
	Error        string      `json:"error"`
	RoutingKey   string      `json:"routing_key"`
	ScheduledFor string      `json:"scheduled_for,omitempty"`
}

// timeLayouts are accepted on decode, most specific first. Producers
// without a zone designator write naive UTC timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// FormatTime renders t the way every timestamp in the store is written.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses a stored timestamp and normalizes it to UTC.
func ParseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Marshal encodes j into its canonical JSON form.
func Marshal(j *Job) ([]byte, error) {
	status, err := j.Status.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bananas.ErrInvalidJob, err)
	}
	priority, err := j.Priority.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bananas.ErrInvalidJob, err)
	}

	w := wireJob{
		ID:          j.ID,
		Name:        j.Name,
		Description: j.Description,
		Payload:     j.Payload,
		Status:      string(status),
		Priority:    string(priority),
		CreatedAt:   FormatTime(j.CreatedAt),
		UpdatedAt:   FormatTime(j.UpdatedAt),
		Attempts:    &j.Attempts,
		MaxRetries:  &j.MaxRetries,
		Error:       j.Error,
		RoutingKey:  j.RoutingKey,
	}
	if j.ScheduledFor != nil {
		w.ScheduledFor = FormatTime(*j.ScheduledFor)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", bananas.ErrInvalidJob, j.ID, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a stored job document. Every failure wraps
// bananas.ErrDeserialize.
func Unmarshal(data []byte) (*Job, error) {
	var w wireJob
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, deserializeErr(err)
	}
	if w.ID == "" {
		return nil, deserializeErr(fmt.Errorf("missing id"))
	}

	status, err := ParseStatus(w.Status)
	if err != nil {
		return nil, deserializeErr(err)
	}
	priority, err := ParsePriority(w.Priority)
	if err != nil {
		return nil, deserializeErr(err)
	}
	createdAt, err := ParseTime(w.CreatedAt)
	if err != nil {
		return nil, deserializeErr(fmt.Errorf("created_at: %w", err))
	}
	updatedAt, err := ParseTime(w.UpdatedAt)
	if err != nil {
		return nil, deserializeErr(fmt.Errorf("updated_at: %w", err))
	}

	j := &Job{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Payload:     w.Payload,
		Status:      status,
		Priority:    priority,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		MaxRetries:  DefaultMaxRetries,
		Error:       w.Error,
		RoutingKey:  w.RoutingKey,
	}
	if w.Attempts != nil {
		j.Attempts = *w.Attempts
	}
	if w.MaxRetries != nil {
		j.MaxRetries = *w.MaxRetries
	}
	if w.ScheduledFor != "" {
		at, err := ParseTime(w.ScheduledFor)
		if err != nil {
			return nil, deserializeErr(fmt.Errorf("scheduled_for: %w", err))
		}
		j.ScheduledFor = &at
	}
	return j, nil
}

// MarshalJSON implements json.Marshaler using the canonical encoding.
func (j *Job) MarshalJSON() ([]byte, error) { return Marshal(j) }

// UnmarshalJSON implements json.Unmarshaler using the canonical encoding.
func (j *Job) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*j = *decoded
	return nil
}

func deserializeErr(err error) error {
	return fmt.Errorf("%w: job: %w", bananas.ErrDeserialize, err)
}
