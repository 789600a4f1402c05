package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"residence-hub/internal/config"
	"residence-hub/internal/events"
	"residence-hub/internal/notify"
)

func main() {
	cfg := config.LoadNotifier()

	cons := notify.NewConsumer(notify.Config{
		RabbitURL:   cfg.RabbitURL,
		Exchange:    cfg.EventsExchange,
		Queue:       cfg.NotifyQueue,
		Bindings:    events.Bindings,
		Prefetch:    16,
		DLXName:     cfg.NotifyQueue + ".dlx",
		DLXQueue:    cfg.NotifyQueue + ".dlq",
		ServiceName: "residence-notifier",
		Location:    cfg.Location(),
	}, notify.NewConsole())

	for {
		if err := cons.Connect(); err != nil {
			log.Printf("[notify] connect failed: %v; retry in 2s", err)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Printf("[notify] run error: %v", err)
		}
	}()

	log.Printf("[notify] started. queue=%s exchange=%s bindings=%v",
		cfg.NotifyQueue, cfg.EventsExchange, events.Bindings)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}
