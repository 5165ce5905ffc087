package job

import (
	"fmt"

	"github.com/muaviaUsmani/Bananas"
	"github.com/muaviaUsmani/Bananas/value"
)

// Definition describes a kind of job with a typed payload. It lets
// producers build jobs for a handler without repeating its name and
// options at every call site.
//
//	var SendEmail = job.NewDefinition[EmailInput]("send_email", job.PriorityHigh,
//	    job.WithMaxRetries(5),
//	)
//	j, err := SendEmail.New(EmailInput{To: "a@example.com"})
type Definition[T any] struct {
	// Name is the handler name workers dispatch on.
	Name string

	// Priority is the queue new jobs are placed in.
	Priority Priority

	// Opts are applied to every job built from this definition.
	Opts []Option
}

// NewDefinition creates a typed job definition.
func NewDefinition[T any](name string, priority Priority, opts ...Option) *Definition[T] {
	return &Definition[T]{
		Name:     name,
		Priority: priority,
		Opts:     opts,
	}
}

// New builds a job carrying payload. Extra options are applied after the
// definition's own.
func (d *Definition[T]) New(payload T, opts ...Option) (*Job, error) {
	v, err := value.From(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload for %q: %w", bananas.ErrInvalidJob, d.Name, err)
	}
	all := make([]Option, 0, len(d.Opts)+len(opts))
	all = append(all, d.Opts...)
	all = append(all, opts...)
	return New(d.Name, v, d.Priority, all...)
}
