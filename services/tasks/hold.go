package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeHoldExpire = "hold:expire"

// HoldExpirePayload identifies the session whose submission hold lapses.
type HoldExpirePayload struct {
	SessionID string `json:"sessionId"`
	HoldID    string `json:"holdId"`
}

// NewHoldExpireTask builds the asynq task that fires when a submitted but
// unpaid plan's hold runs out.
func NewHoldExpireTask(payload HoldExpirePayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeHoldExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// HoldScheduler enqueues hold-expiry work. The booking workflow depends on
// this seam rather than on asynq directly.
type HoldScheduler interface {
	ScheduleHoldExpiry(ctx context.Context, sessionID, holdID string, fireAt time.Time) error
}

// AsynqHoldScheduler implements HoldScheduler on an asynq client.
type AsynqHoldScheduler struct {
	Client *asynq.Client
}

func NewAsynqHoldScheduler(client *asynq.Client) *AsynqHoldScheduler {
	return &AsynqHoldScheduler{Client: client}
}

func (s *AsynqHoldScheduler) ScheduleHoldExpiry(ctx context.Context, sessionID, holdID string, fireAt time.Time) error {
	task, opts, err := NewHoldExpireTask(HoldExpirePayload{SessionID: sessionID, HoldID: holdID}, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
