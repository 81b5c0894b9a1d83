package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	OutputPath string
	Samples    int
	Interval   time.Duration

	// Seed is applied to simulated sensors when HasSeed is set.
	Seed    uint64
	HasSeed bool

	DHT22Pin string
	HTTPAddr string

	Influx InfluxConfig
	MQTT   MQTTConfig
}

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

func (c InfluxConfig) Enabled() bool { return c.URL != "" }

type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
}

func (c MQTTConfig) Enabled() bool { return c.Broker != "" }

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		OutputPath: getEnv("SENSOR_LOG_FILE", "sensor_data.csv"),
		DHT22Pin:   os.Getenv("DHT22_PIN"),
		HTTPAddr:   os.Getenv("HTTP_ADDR"),
		Influx: InfluxConfig{
			URL:    os.Getenv("INFLUX_URL"),
			Token:  os.Getenv("INFLUX_TOKEN"),
			Org:    os.Getenv("INFLUX_ORG"),
			Bucket: os.Getenv("INFLUX_BUCKET"),
		},
		MQTT: MQTTConfig{
			Broker:   os.Getenv("MQTT_BROKER"),
			ClientID: getEnv("MQTT_CLIENT_ID", "sensorlog-"+uuid.NewString()),
			Topic:    getEnv("MQTT_TOPIC", "sensors/samples"),
		},
	}

	var err error
	if cfg.Samples, err = strconv.Atoi(getEnv("SAMPLE_COUNT", "20")); err != nil {
		return nil, fmt.Errorf("config: SAMPLE_COUNT: %w", err)
	}
	if cfg.Interval, err = time.ParseDuration(getEnv("SAMPLE_INTERVAL", "1s")); err != nil {
		return nil, fmt.Errorf("config: SAMPLE_INTERVAL: %w", err)
	}
	if v := os.Getenv("SENSOR_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("config: SENSOR_SEED: %w", err)
		}
		cfg.HasSeed = true
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("config: SAMPLE_COUNT must be positive, got %d", c.Samples)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("config: SAMPLE_INTERVAL must be positive, got %s", c.Interval)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("config: SENSOR_LOG_FILE is required")
	}
	if c.Influx.Enabled() && (c.Influx.Org == "" || c.Influx.Bucket == "") {
		return fmt.Errorf("config: INFLUX_ORG and INFLUX_BUCKET are required with INFLUX_URL")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
