package result

import (
	"fmt"
	"strconv"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/value"
)

// Hash field names of a stored result.
const (
	FieldStatus      = "status"
	FieldResult      = "result"
	FieldError       = "error"
	FieldCompletedAt = "completed_at"
	FieldDurationMS  = "duration_ms"
)

// Fields encodes r as result hash fields. status, completed_at and
// duration_ms are always present; result and error only when non-empty.
func Fields(r *Result) (map[string]any, error) {
	status, err := r.Status.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bananas.ErrInvalidResult, err)
	}

	fields := map[string]any{
		FieldStatus:      string(status),
		FieldCompletedAt: job.FormatTime(r.CompletedAt),
		FieldDurationMS:  strconv.FormatInt(r.DurationMS, 10),
	}
	if !r.Result.IsEmpty() {
		raw, err := r.Result.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("%w: encode result of %s: %w", bananas.ErrInvalidResult, r.JobID, err)
		}
		fields[FieldResult] = string(raw)
	}
	if r.Error != "" {
		fields[FieldError] = r.Error
	}
	return fields, nil
}

// FromFields decodes a non-empty result hash read for jobID. Fields written
// by older producers may be missing: completed_at is then zero and
// duration_ms is 0. A status that does not decode, or a result field that is
// not JSON, wraps bananas.ErrDeserialize.
func FromFields(jobID string, fields map[string]string) (*Result, error) {
	status, err := job.ParseStatus(fields[FieldStatus])
	if err != nil {
		return nil, deserializeErr(jobID, err)
	}

	r := &Result{
		JobID:  jobID,
		Status: status,
		Error:  fields[FieldError],
	}

	if s := fields[FieldCompletedAt]; s != "" {
		at, err := job.ParseTime(s)
		if err != nil {
			return nil, deserializeErr(jobID, fmt.Errorf("completed_at: %w", err))
		}
		r.CompletedAt = at
	}

	if s := fields[FieldDurationMS]; s != "" {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, deserializeErr(jobID, fmt.Errorf("duration_ms: %w", err))
		}
		r.DurationMS = ms
	}

	if raw, ok := fields[FieldResult]; ok {
		v, err := decodePayload(raw)
		if err != nil {
			return nil, deserializeErr(jobID, fmt.Errorf("result: %w", err))
		}
		r.Result = v
	}
	return r, nil
}

// decodePayload parses the stored result. Producers that encode twice store
// a JSON string holding a JSON document; when that inner document is an
// object or array it replaces the string, otherwise the string is kept.
func decodePayload(raw string) (value.Value, error) {
	v, err := value.Parse([]byte(raw))
	if err != nil {
		return value.Value{}, err
	}
	s, ok := v.AsString()
	if !ok {
		return v, nil
	}
	inner, err := value.Parse([]byte(s))
	if err != nil {
		return v, nil
	}
	switch inner.Kind() {
	case value.KindMap, value.KindList:
		return inner, nil
	}
	return v, nil
}

func deserializeErr(jobID string, err error) error {
	return fmt.Errorf("%w: result %s: %w", bananas.ErrDeserialize, jobID, err)
}
