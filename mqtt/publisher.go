package mqtt

import (
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/config"
)

const publishTimeout = 5 * time.Second

// Publisher sends the current prices as retained messages, for home
// automation systems to pick up.
type Publisher struct {
	client paho.Client
	logger *slog.Logger
	prefix string
}

func New(cnfg config.AppConfigMqtt) *Publisher {
	logger := slog.Default().With("module", "mqtt")
	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cnfg.Host, cnfg.Port))
	opts.SetClientID(cnfg.GetClientId())
	opts.SetUsername(cnfg.Username)
	opts.SetPassword(cnfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.OnConnect = func(client paho.Client) {
		logger.Info("MQTT connected")
	}
	opts.OnConnectionLost = func(client paho.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	}

	bridgeLoggers(logger.With(slog.String("source", "paho")))

	return &Publisher{
		client: paho.NewClient(opts),
		logger: logger,
		prefix: cnfg.GetTopicPrefix(),
	}
}

func (p *Publisher) Connect() error {
	p.logger.Debug("connecting MQTT client")
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		// Keeps retrying in the background
		p.logger.Warn("MQTT broker not reachable yet")
		return nil
	}
	return token.Error()
}

func (p *Publisher) Disconnect() {
	p.logger.Debug("disconnecting MQTT client")
	p.client.Disconnect(250)
}

func stateTopic(prefix, area string) string {
	return fmt.Sprintf("%s/%s/state", prefix, area)
}

func windowTopic(prefix, area string) string {
	return fmt.Sprintf("%s/%s/window", prefix, area)
}

func (p *Publisher) Publish(v board.View) error {
	if !p.client.IsConnectionOpen() {
		return fmt.Errorf("publishing prices: not connected")
	}

	state, window, err := payloads(v)
	if err != nil {
		return fmt.Errorf("encoding prices: %w", err)
	}

	for topic, payload := range map[string][]byte{
		stateTopic(p.prefix, v.Area):  state,
		windowTopic(p.prefix, v.Area): window,
	} {
		token := p.client.Publish(topic, 1, true, payload)
		if !token.WaitTimeout(publishTimeout) {
			return fmt.Errorf("publishing to %s: timeout", topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publishing to %s: %w", topic, err)
		}
	}

	return nil
}
