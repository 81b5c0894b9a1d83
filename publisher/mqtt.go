package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Uranury/sensorlog/recorder"
)

type Config struct {
	Broker   string
	ClientID string
	Topic    string
}

// Connect dials the broker, retrying with exponential backoff.
func Connect(cfg Config) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second

	var client mqtt.Client
	err := backoff.Retry(func() error {
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("Failed to connect to MQTT broker: %v", token.Error())
			return token.Error()
		}
		return nil
	}, backoff.WithMaxRetries(bo, 4))
	if err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}

	log.Printf("Connected to MQTT broker at %s", cfg.Broker)
	return client, nil
}

// client is the subset of mqtt.Client the sink needs.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTSink publishes each sample as JSON at QoS 0.
type MQTTSink struct {
	client client
	topic  string
}

func NewMQTTSink(c mqtt.Client, topic string) *MQTTSink {
	return &MQTTSink{client: c, topic: topic}
}

func (p *MQTTSink) Write(s recorder.Sample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *MQTTSink) Close() error {
	p.client.Disconnect(250)
	log.Println("MQTT client disconnected")
	return nil
}
