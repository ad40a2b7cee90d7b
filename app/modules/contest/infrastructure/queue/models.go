package contestqueue

// SweepExpiredJob completes every active contest whose end date has passed.
// Enqueued periodically; carries no arguments.
type SweepExpiredJob struct{}

// Kind returns the job type identifier for River.
func (SweepExpiredJob) Kind() string { return "contest_sweep_expired" }
