package jobs

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	DB *gorm.DB

	// LeaseTimeout bounds how long a job may sit in processing before it is
	// considered abandoned (crashed worker) and requeued.
	LeaseTimeout time.Duration
}

func (r *Repo) Enqueue(ctx context.Context, payload json.RawMessage, runAt time.Time) (*Job, error) {
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	j := Job{
		Status:      StatusPending,
		Payload:     payload,
		ScheduledAt: runAt,
	}
	if err := r.DB.WithContext(ctx).Create(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// ClaimNext transitions the oldest due pending job to processing and returns
// it. The pending->processing transition is a single conditional statement:
// losing the race to another worker yields (nil, nil), never an error.
func (r *Repo) ClaimNext(ctx context.Context) (*Job, error) {
	var job Job
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// requeue jobs abandoned mid-run by a crashed worker
		lease := r.LeaseTimeout
		if lease <= 0 {
			lease = 5 * time.Minute
		}
		tx.Exec(`
update jobs
set status='pending', updated_at=now()
where status='processing' and updated_at < now() - make_interval(secs => ?)
`, lease.Seconds())

		q := tx.Raw(`
with next as (
  select id
  from jobs
  where status='pending' and scheduled_at <= now()
  order by scheduled_at asc
  for update skip locked
  limit 1
)
update jobs
set status='processing', attempts=attempts+1, updated_at=now()
where id in (select id from next) and status='pending'
returning *;
`)

		return q.Scan(&job).Error
	})
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, nil
	}
	return &job, nil
}

func (r *Repo) Complete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='completed',
    last_error=null,
    last_run_at=now(),
    run_count=run_count+1,
    updated_at=now()
where id=?`, id).Error
}

func (r *Repo) Fail(ctx context.Context, id uint64, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='failed', last_error=?, updated_at=now()
where id=?`, errMsg, id).Error
}

func (r *Repo) RetryLater(ctx context.Context, id uint64, runAt time.Time, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(`
update jobs
set status='pending', scheduled_at=?, last_error=?, updated_at=now()
where id=?`, runAt, errMsg, id).Error
}

// Reschedule rewrites a recurring job in place after a successful run. The
// row never multiplies: one canonical row per recurring definition.
func (r *Repo) Reschedule(ctx context.Context, id uint64, nextAt time.Time) error {
	res := r.DB.WithContext(ctx).Exec(`
update jobs
set status='pending',
    scheduled_at=?,
    attempts=0,
    last_error=null,
    last_run_at=now(),
    run_count=run_count+1,
    updated_at=now()
where id=?`, nextAt, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []Job
	err := r.DB.WithContext(ctx).
		Order("scheduled_at desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
