// Package result defines the terminal outcome of a job, its hash encoding
// and the result store contract.
//
// A worker stores exactly one [Result] per job under the job's result key
// and then publishes the status on the job's notification channel. Readers
// treat an absent result as "not yet available", never as an error.
//
// The stored result field is JSON. Some producers encode it twice, storing
// a JSON string that holds a JSON document; [FromFields] unwraps one such
// layer when the inner document is an object or array.
package result
