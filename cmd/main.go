package main

import (
	"log"

	"backend/config"
	"backend/routes"
	"backend/services"
	"backend/utils"

	"go.uber.org/zap"
)

func main() {
	config.InitDB()
	utils.InitS3()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Warn("push service unavailable, continuing without push delivery", zap.Error(err))
		push = nil
	}

	services.InitAlertDeps(config.DB, hub, push)

	sched := services.NewReminderScheduler(config.DB, logger)
	sched.Start()
	defer sched.Stop()

	r := routes.SetupRouter(routes.Deps{
		Analytics: services.NewAnalyticsService(config.DB),
		Realtime:  hub,
		Push:      push,
	})
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
