package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	go monitorRedisConnection()

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] triggering reminder for %s %s: %s", p.Target, p.ID, p.Title)

		data := map[string]string{
			"reminderId":    p.ReminderID,
			"appointmentId": p.AppointmentID,
			"fireDate":      p.FireDate,
		}

		var err error
		switch p.Target {
		case "patient":
			err = notifSvc.SendPatientNotification(ctx, p.ID, p.Title, p.Body, data)
		case "doctor":
			err = notifSvc.SendDoctorNotification(ctx, p.ID, p.Title, p.Body, data)
		default:
			log.Printf("[ReminderHandler] unknown target type: %s", p.Target)
			return nil
		}

		if err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
		}
		return err
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
