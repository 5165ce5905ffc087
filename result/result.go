package result

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/job"
	"github.com/muaviaUsmani/Bananas/value"
)

// Result is the terminal outcome of one job, written by the worker that ran
// it. Exactly one of Result and Error is meaningful, depending on Status.
// A completed job may carry no payload.
type Result struct {
	JobID       string
	Status      job.Status
	Result      value.Value
	Error       string
	CompletedAt time.Time
	DurationMS  int64
}

// Success builds a completed result.
func Success(jobID string, payload value.Value, duration time.Duration) *Result {
	return &Result{
		JobID:       jobID,
		Status:      job.StatusCompleted,
		Result:      payload,
		CompletedAt: time.Now().UTC(),
		DurationMS:  duration.Milliseconds(),
	}
}

// Failure builds a failed result carrying errMsg.
func Failure(jobID, errMsg string, duration time.Duration) *Result {
	return &Result{
		JobID:       jobID,
		Status:      job.StatusFailed,
		Error:       errMsg,
		CompletedAt: time.Now().UTC(),
		DurationMS:  duration.Milliseconds(),
	}
}

// IsSuccess reports whether the job completed.
func (r *Result) IsSuccess() bool { return r.Status == job.StatusCompleted }

// IsFailed reports whether the job failed.
func (r *Result) IsFailed() bool { return r.Status == job.StatusFailed }

// Duration returns the recorded execution time.
func (r *Result) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// Unmarshal decodes the success payload into dest. For a failed job it
// returns an *Error carrying the worker's message and leaves dest untouched.
func (r *Result) Unmarshal(dest any) error {
	if r.IsFailed() {
		return &Error{JobID: r.JobID, Message: r.Error}
	}
	if r.Result.IsNull() {
		return nil
	}
	raw, err := r.Result.MarshalJSON()
	if err != nil {
		return fmt.Errorf("result: encode payload of %s: %w", r.JobID, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("result: decode payload of %s: %w", r.JobID, err)
	}
	return nil
}

// Validate checks that r can be stored: a terminal status, a non-empty job
// id and a non-negative duration.
func (r *Result) Validate() error {
	if r.JobID == "" {
		return fmt.Errorf("%w: job id is empty", bananas.ErrInvalidResult)
	}
	if !r.Status.IsTerminal() {
		return fmt.Errorf("%w: status %s is not terminal", bananas.ErrInvalidResult, r.Status)
	}
	if r.DurationMS < 0 {
		return fmt.Errorf("%w: negative duration %dms", bananas.ErrInvalidResult, r.DurationMS)
	}
	return nil
}

// Error is returned by Result.Unmarshal when the job failed.
type Error struct {
	JobID   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}
