// Package alert provides the transport and storage backends for the alert
// broker: MQTT publication, Redis persistence and webhook escalation.
package alert

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	corealert "github.com/gridwerk/microgrid/core/alert"
	"github.com/gridwerk/microgrid/infra/logger"
)

// mqttClient is the subset of the Paho client used by the publisher. It can
// be replaced in tests.
type mqttClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// MQTTPublisher publishes alerts on a per-severity topic.
type MQTTPublisher struct {
	cli         mqttClient
	topicPrefix string
	qos         byte
	log         logger.Logger
}

// NewMQTTPublisher connects a Paho client and returns the publisher.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &MQTTPublisher{
		cli:         cli,
		topicPrefix: cfg.TopicPrefix,
		qos:         cfg.QoS,
		log:         logger.New("alert-mqtt"),
	}, nil
}

// PublishAlert sends the alert as JSON on "{prefix}/{severity}".
func (p *MQTTPublisher) PublishAlert(a corealert.Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	topic := fmt.Sprintf("%s/%s", p.topicPrefix, a.Severity)
	tok := p.cli.Publish(topic, p.qos, false, payload)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish alert: %w", tok.Error())
	}
	p.log.Debugw("alert published", map[string]any{"topic": topic, "id": a.ID})
	return nil
}

// Close disconnects the underlying client.
func (p *MQTTPublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
