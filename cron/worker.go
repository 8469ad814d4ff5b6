package cron

import (
	"context"
	"encoding/json"
	"log"

	"tutorly/config"
	"tutorly/services/booking"
	"tutorly/services/tasks"

	"github.com/hibiken/asynq"
)

// InitHoldExpiryWorker runs the asynq worker that releases lapsed payment
// holds in the background.
func InitHoldExpiryWorker(workflow booking.WorkflowService) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeHoldExpire, handleHoldExpireTask(workflow))

	go func() {
		log.Println("[HoldExpiryWorker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[HoldExpiryWorker] Failed to start worker: %v", err)
		}
	}()

	return srv
}

func handleHoldExpireTask(workflow booking.WorkflowService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.HoldExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[HoldExpiryWorker] Invalid payload: %v", err)
			return err
		}

		if err := workflow.ExpireHold(ctx, p.SessionID, p.HoldID); err != nil {
			log.Printf("[HoldExpiryWorker] Failed to expire hold for session %s: %v", p.SessionID, err)
			return err
		}
		return nil
	}
}
