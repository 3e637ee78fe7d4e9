package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/repo"
	"github.com/Ahmet872/Alarm-System/internal/schedule"
	"github.com/Ahmet872/Alarm-System/internal/service/evaluator"
	"github.com/Ahmet872/Alarm-System/internal/service/worker"
	"github.com/Ahmet872/Alarm-System/internal/web"
	"github.com/Ahmet872/Alarm-System/ioc"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() (once bool, serve bool) {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	onceFlag := pflag.Bool("once", false, "run a single scan cycle and exit")
	serveFlag := pflag.Bool("serve", true, "serve the alarm CRUD API")
	pflag.Parse()

	// secrets can live in .env instead of the yaml file
	_ = godotenv.Load()
	viper.AutomaticEnv()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
	return *onceFlag, *serveFlag
}

func main() {
	once, serve := initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	alarmRepo := repo.NewAlarmRepo(db)

	source := ioc.InitMarketSource()
	mailer := ioc.InitEmailService()

	processor := worker.NewProcessor(alarmRepo, source, evaluator.NewEvaluator(), mailer,
		worker.WithConcurrency(viper.GetInt("worker.concurrency")),
		worker.WithCycleTimeout(viper.GetDuration("worker.cycle_timeout")),
		worker.WithRetryFailed(viper.GetBool("worker.retry_failed")),
	)

	if serve {
		handler := web.NewAlarmHandler(alarmRepo)
		engine := gin.Default()
		handler.RegisterRoutes(engine)
		addr := viper.GetString("server.addr")
		if addr == "" {
			addr = ":8000"
		}
		go func() {
			if err := engine.Run(addr); err != nil {
				panic(err)
			}
		}()
	}

	if once {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		result, err := processor.Scan(ctx)
		if err != nil {
			panic(err)
		}
		slog.Info("single scan finished", "triggered", result.Triggered, "failed", result.Failed)
		return
	}

	interval := viper.GetDuration("worker.scan_interval")
	if interval <= 0 {
		interval = time.Minute
	}

	runner := schedule.NewRunner()
	if err := runner.Every(interval, worker.NewScanTask(processor)); err != nil {
		panic(err)
	}
	if err := runner.Every(24*time.Hour, worker.NewCleanupTask(alarmRepo, viper.GetDuration("worker.cleanup_age"))); err != nil {
		panic(err)
	}
	slog.Info("alarm worker started", "scan_interval", interval)
	runner.StartBlocking()
}
