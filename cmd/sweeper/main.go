package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"fleet-registry/internal/config"
	"fleet-registry/internal/repository"
	"fleet-registry/internal/service"
)

// sweeper runs the document expiry scan, either once (the default) or on
// a cron schedule with -daemon.
func main() {
	dateFlag := flag.String("date", "", "run the sweep as of this date (YYYY-MM-DD) instead of today")
	daemon := flag.Bool("daemon", false, "keep running and sweep on the SWEEP_CRON schedule")
	cronFlag := flag.String("cron", "", "cron schedule override; implies -daemon")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if *cronFlag != "" {
		cfg.SweepCron = *cronFlag
		*daemon = true
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, nil, cfg)

	if !*daemon {
		today := time.Now()
		if *dateFlag != "" {
			today, err = time.Parse("2006-01-02", *dateFlag)
			if err != nil {
				logrus.WithError(err).Fatal("Invalid -date, expected YYYY-MM-DD")
			}
		}

		report, err := services.Expiry.RunSweep(context.Background(), today)
		if err != nil {
			logrus.WithError(err).Fatal("Sweep failed")
		}
		logrus.WithFields(logrus.Fields{
			"date":             report.Date,
			"vehicles_matched": report.VehiclesMatched,
			"created":          report.Created,
			"deduplicated":     report.Deduplicated,
			"suppressed":       report.Suppressed,
			"errors":           report.Errors,
		}).Info("Sweep complete")
		return
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.SweepCron, func() {
		report, err := services.Expiry.RunSweep(context.Background(), time.Now())
		if err != nil {
			logrus.WithError(err).Error("Scheduled sweep failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"created":      report.Created,
			"deduplicated": report.Deduplicated,
			"suppressed":   report.Suppressed,
			"errors":       report.Errors,
		}).Info("Scheduled sweep complete")
	})
	if err != nil {
		logrus.WithError(err).Fatal("Invalid SWEEP_CRON expression")
	}

	c.Start()
	logrus.WithField("schedule", cfg.SweepCron).Info("Sweeper started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	logrus.Info("Sweeper stopped")
}
