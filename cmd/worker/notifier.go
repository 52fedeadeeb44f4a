package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/stoneriver/portal/internal/batch"
	"github.com/stoneriver/portal/internal/config"
	"github.com/stoneriver/portal/internal/dispatcher"
	"github.com/stoneriver/portal/internal/kafka"
	"github.com/stoneriver/portal/internal/logger"
	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/worker"
)

var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Deliver status-change SMS notifications from Kafka",
	RunE:  runNotifier,
}

func runNotifier(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) providers → dispatcher
	var provs []dispatcher.Provider
	maxAttempts := 2
	for _, pc := range cfg.Providers {
		if !pc.Enabled || strings.TrimSpace(pc.BaseURL) == "" {
			continue
		}
		provs = append(provs,
			dispatcher.NewHTTPProvider(
				pc.Name,
				strings.TrimRight(pc.BaseURL, "/"),
				pc.SendPath,
				pc.TimeoutMs,
				pc.Breaker.FailThreshold,
				pc.Breaker.OpenForMs,
			),
		)
		if pc.MaxAttempts > maxAttempts {
			maxAttempts = pc.MaxAttempts
		}
	}
	if len(provs) == 0 {
		return fmt.Errorf("no providers enabled in config")
	}
	disp := dispatcher.NewDispatcher(provs, maxAttempts)

	// 3) kafka consumer
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "portal-notifier"
	}

	consumer := kafka.NewConsumerFromConfig(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          batch.StatusChangedTopic,
		GroupID:        groupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	defer consumer.Close()

	w := worker.NewNotifier(consumer, disp)

	// 4) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf(">> notifier started topic=%s group=%s workers=%d",
		batch.StatusChangedTopic, groupID, w.Workers)

	return w.Run(ctx)
}
