package redis

import "github.com/muaviaUsmani/Bananas/job"

// DefaultPrefix namespaces every key when no prefix is configured.
const DefaultPrefix = "bananas"

// Keys maps record kinds to store keys. Every kind occupies its own
// namespace segment, so keys of different kinds never collide. Ids are not
// escaped and must not contain the ":" separator.
//
//	{prefix}:job:{id}                 job record (string)
//	{prefix}:queue:{priority}         priority queue (list)
//	{prefix}:queue:scheduled          scheduled set (sorted set, score = Unix seconds)
//	{prefix}:result:{id}              result record (hash)
//	{prefix}:result:notify:{id}       result notification channel
type Keys struct {
	prefix string
}

// NewKeys returns the key codec for prefix. An empty prefix selects
// DefaultPrefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{prefix: prefix}
}

// Prefix returns the namespace prefix.
func (k Keys) Prefix() string { return k.prefix }

// Job returns the key of a job record.
func (k Keys) Job(jobID string) string { return k.prefix + ":job:" + jobID }

// Queue returns the list key for a priority.
func (k Keys) Queue(p job.Priority) string { return k.prefix + ":queue:" + p.String() }

// Scheduled returns the sorted set key holding scheduled job ids.
func (k Keys) Scheduled() string { return k.prefix + ":queue:scheduled" }

// Result returns the hash key of a job's result.
func (k Keys) Result(jobID string) string { return k.prefix + ":result:" + jobID }

// ResultNotify returns the pub/sub channel announcing a job's result.
func (k Keys) ResultNotify(jobID string) string { return k.prefix + ":result:notify:" + jobID }
