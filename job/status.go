package job

import "fmt"

// Status is the lifecycle state of a job. The zero value is not a valid
// status; string tags are used only at the serialization boundary.
//
//	scheduled → pending → processing → completed
//	                                 → failed
type Status uint8

const (
	// StatusPending means the job is waiting in a priority queue.
	StatusPending Status = iota + 1
	// StatusProcessing means a worker has claimed the job.
	StatusProcessing
	// StatusCompleted means the job finished successfully.
	StatusCompleted
	// StatusFailed means the job failed and will not be retried.
	StatusFailed
	// StatusScheduled means the job waits in the scheduled set until due.
	StatusScheduled
)

var statusTags = map[Status]string{
	StatusPending:    "pending",
	StatusProcessing: "processing",
	StatusCompleted:  "completed",
	StatusFailed:     "failed",
	StatusScheduled:  "scheduled",
}

// ParseStatus maps a wire tag to a Status. Unknown tags are rejected.
func ParseStatus(tag string) (Status, error) {
	for s, t := range statusTags {
		if t == tag {
			return s, nil
		}
	}
	return 0, fmt.Errorf("job: unknown status %q", tag)
}

// String returns the wire tag.
func (s Status) String() string {
	if t, ok := statusTags[s]; ok {
		return t
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	_, ok := statusTags[s]
	return ok
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	t, ok := statusTags[s]
	if !ok {
		return nil, fmt.Errorf("job: invalid status %d", uint8(s))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority selects which queue a pending job waits in.
type Priority uint8

const (
	// PriorityHigh jobs are consumed before any other priority.
	PriorityHigh Priority = iota + 1
	// PriorityNormal is the default priority.
	PriorityNormal
	// PriorityLow jobs are consumed when the other queues are empty.
	PriorityLow
)

var priorityTags = map[Priority]string{
	PriorityHigh:   "high",
	PriorityNormal: "normal",
	PriorityLow:    "low",
}

// Priorities returns every priority, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal, PriorityLow}
}

// ParsePriority maps a wire tag to a Priority. Unknown tags are rejected.
func ParsePriority(tag string) (Priority, error) {
	for p, t := range priorityTags {
		if t == tag {
			return p, nil
		}
	}
	return 0, fmt.Errorf("job: unknown priority %q", tag)
}

// String returns the wire tag.
func (p Priority) String() string {
	if t, ok := priorityTags[p]; ok {
		return t
	}
	return fmt.Sprintf("priority(%d)", uint8(p))
}

// IsValid reports whether p is one of the defined priorities.
func (p Priority) IsValid() bool {
	_, ok := priorityTags[p]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	t, ok := priorityTags[p]
	if !ok {
		return nil, fmt.Errorf("job: invalid priority %d", uint8(p))
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
