package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker drives the claim/dispatch loop. Multiple workers (in this process
// or others) may run against the same jobs table; the conditional claim in
// Repo.ClaimNext is the only coordination between them.
type Worker struct {
	ID       string
	Repo     *Repo
	Registry *Registry
	Poll     time.Duration
	Log      *zap.Logger
}

func (w *Worker) Run(ctx context.Context) {
	poll := w.Poll
	if poll <= 0 {
		poll = 2 * time.Second
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.iterate(ctx)
		}
	}
}

// iterate runs one claim/dispatch cycle. A panicking handler must not take
// the loop down with it.
func (w *Worker) iterate(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.Log.Error("worker iteration panicked", zap.String("worker", w.ID), zap.Any("panic", r))
		}
	}()

	job, err := w.Repo.ClaimNext(ctx)
	if err != nil {
		w.Log.Error("claim failed", zap.String("worker", w.ID), zap.Error(err))
		return
	}
	if job == nil {
		// nothing due, or another worker won the claim
		return
	}

	w.dispatch(ctx, job)
}

func (w *Worker) dispatch(ctx context.Context, job *Job) {
	h := w.Registry.Resolve(job.Payload)
	if h == nil {
		w.Log.Warn("no handler for job", zap.Uint64("job_id", job.ID))
		if err := w.Repo.Fail(ctx, job.ID, "no_handler"); err != nil {
			w.Log.Error("mark no_handler failed", zap.Uint64("job_id", job.ID), zap.Error(err))
		}
		return
	}

	w.settle(ctx, job, h.Handle(ctx, job.Payload))
}

type outcome int

const (
	outcomeComplete outcome = iota
	outcomeReschedule
	outcomeRetry
	outcomeFail
)

// decide maps a finished run onto the job's next state. attempts was already
// incremented by the claim, so it is the number of runs taken so far.
func decide(job *Job, handlerErr error, now time.Time) (outcome, time.Time) {
	if handlerErr != nil {
		if job.Attempts >= MaxAttempts {
			return outcomeFail, time.Time{}
		}
		return outcomeRetry, now.Add(Backoff(job.Attempts))
	}
	if interval, ok := RecurringInterval(job.Payload); ok {
		return outcomeReschedule, now.Add(interval)
	}
	return outcomeComplete, time.Time{}
}

func (w *Worker) settle(ctx context.Context, job *Job, handlerErr error) {
	switch out, at := decide(job, handlerErr, time.Now()); out {
	case outcomeFail:
		w.Log.Warn("job failed terminally",
			zap.Uint64("job_id", job.ID), zap.Int("attempts", job.Attempts), zap.Error(handlerErr))
		if err := w.Repo.Fail(ctx, job.ID, handlerErr.Error()); err != nil {
			w.Log.Error("mark failed failed", zap.Uint64("job_id", job.ID), zap.Error(err))
		}
	case outcomeRetry:
		w.Log.Info("job will retry",
			zap.Uint64("job_id", job.ID), zap.Int("attempts", job.Attempts), zap.Time("run_at", at), zap.Error(handlerErr))
		if err := w.Repo.RetryLater(ctx, job.ID, at, handlerErr.Error()); err != nil {
			w.Log.Error("retry reschedule failed", zap.Uint64("job_id", job.ID), zap.Error(err))
		}
	case outcomeReschedule:
		if err := w.Repo.Reschedule(ctx, job.ID, at); err != nil {
			// A recurring job that cannot re-arm must still leave a trace;
			// complete it and let an operator re-enable the schedule.
			w.Log.Error("recurring reschedule failed, completing instead",
				zap.Uint64("job_id", job.ID), zap.Error(err))
			if cerr := w.Repo.Complete(ctx, job.ID); cerr != nil {
				w.Log.Error("mark completed failed", zap.Uint64("job_id", job.ID), zap.Error(cerr))
			}
		}
	default:
		if err := w.Repo.Complete(ctx, job.ID); err != nil {
			w.Log.Error("mark completed failed", zap.Uint64("job_id", job.ID), zap.Error(err))
		}
	}
}
