// Package leads is the client-side cache of lead records.
//
// Every operation follows the same contract: on dispatch the kind goes
// Pending and the shared Error and Success messages are cleared; when the
// server answers, the kind settles as Fulfilled or Rejected and the cache is
// changed only with what the server confirmed. Nothing is retried and
// nothing is applied optimistically.
//
// Statuses are kept per operation kind (see package status), so a slow
// stats request does not hide a failed update. A newer request of the same
// kind supersedes an older one, and a request whose context is cancelled
// before it settles is discarded without touching the cache.
package leads
