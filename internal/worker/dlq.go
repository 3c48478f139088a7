package worker

// Jobs that burn through all their retries are parked on a per-queue Redis
// list ("dlq:" + source queue). Nothing consumes these lists automatically;
// an operator inspects them and can replay a job by pushing its payload back
// onto the source queue.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DeadJob is a parked job: the untouched payload plus enough context to
// understand the failure without decoding it.
type DeadJob struct {
	Queue     string          `json:"queue"`
	JobType   string          `json:"job_type"`
	Payload   json.RawMessage `json:"payload"`
	Recipient string          `json:"recipient,omitempty"`
	LastError string          `json:"last_error"`
	Attempts  int             `json:"attempts"`
	ParkedAt  time.Time       `json:"parked_at"`
}

// ParkDeadJob moves a job that failed all its attempts onto the queue's dead
// letter list. Best effort: a job that cannot even be parked is only logged.
func ParkDeadJob(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, lastErr error, attempts int) {
	dead := DeadJob{
		Queue:     queue,
		JobType:   jobType,
		Payload:   payload,
		Recipient: recipientOf(payload),
		LastError: lastErr.Error(),
		Attempts:  attempts,
		ParkedAt:  time.Now().UTC(),
	}

	data, err := json.Marshal(dead)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: marshal failed")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead letter: push failed")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("recipient", dead.Recipient).
		Str("last_error", dead.LastError).
		Int("attempts", attempts).
		Msg("job parked on dead letter list")
}

// recipientOf pulls the destination address out of an email-shaped payload
// so the dead letter log names who missed their mail. Empty for other jobs.
func recipientOf(payload json.RawMessage) string {
	var envelope struct {
		ToEmail string `json:"to_email"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	return envelope.ToEmail
}

// DeadJobCount reports how many jobs are parked for a queue.
func DeadJobCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+queue).Result()
}
