package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Uranury/sensorlog/config"
	"github.com/Uranury/sensorlog/dashboard"
	"github.com/Uranury/sensorlog/metrics"
	"github.com/Uranury/sensorlog/publisher"
	"github.com/Uranury/sensorlog/recorder"
	"github.com/Uranury/sensorlog/sensors"
	"github.com/Uranury/sensorlog/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := newManager(cfg)
	if err != nil {
		log.Fatalf("sensor init failed: %v", err)
	}

	csvSink, err := recorder.CreateCSV(cfg.OutputPath, manager.Columns())
	if err != nil {
		log.Fatalf("cannot create %s: %v", cfg.OutputPath, err)
	}

	sinks := []recorder.Sink{csvSink, recorder.NewConsoleSink(os.Stdout)}

	reg := prometheus.NewRegistry()
	sinks = append(sinks, metrics.New(reg))

	if cfg.Influx.Enabled() {
		client := influxdb2.NewClient(cfg.Influx.URL, cfg.Influx.Token)
		sinks = append(sinks, recorder.BestEffort("influx", storage.NewInfluxSink(client, cfg.Influx.Org, cfg.Influx.Bucket)))
		log.Printf("Writing samples to InfluxDB at %s", cfg.Influx.URL)
	}

	if cfg.MQTT.Enabled() {
		client, err := publisher.Connect(publisher.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
		})
		if err != nil {
			log.Fatal(err)
		}
		sinks = append(sinks, recorder.BestEffort("mqtt", publisher.NewMQTTSink(client, cfg.MQTT.Topic)))
	}

	if cfg.HTTPAddr != "" {
		hub := dashboard.NewHub()
		sinks = append(sinks, recorder.BestEffort("dashboard", hub))
		router := dashboard.NewRouter(hub, manager, reg)
		go func() {
			if err := dashboard.Serve(ctx, cfg.HTTPAddr, router); err != nil {
				log.Printf("dashboard server error: %v", err)
			}
		}()
	}

	fmt.Printf("Logging sensor data to %s ...\n", cfg.OutputPath)

	rec := recorder.New(manager, cfg.Samples, cfg.Interval, sinks...)
	if err := rec.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Println("Interrupted, stopping early")
		} else {
			log.Fatalf("recording failed: %v", err)
		}
	}

	fmt.Printf("Data logging complete. File saved as %s\n", cfg.OutputPath)
}

func newManager(cfg *config.Config) (*sensors.Manager, error) {
	var tempOpts, pressOpts []sensors.Option
	if cfg.HasSeed {
		tempOpts = append(tempOpts, sensors.WithSeed(cfg.Seed))
		pressOpts = append(pressOpts, sensors.WithSeed(cfg.Seed+1))
	}

	m := sensors.NewManager()
	m.Add(sensors.NewTemperature(tempOpts...))
	m.Add(sensors.NewPressure(pressOpts...))

	if cfg.DHT22Pin != "" {
		d, err := sensors.NewDHT22(cfg.DHT22Pin)
		if err != nil {
			return nil, err
		}
		m.Add(d)
	}

	log.Println("Monitoring sensors:", m.Len())
	for _, name := range m.Columns() {
		log.Printf("  - %s", name)
	}
	return m, nil
}
