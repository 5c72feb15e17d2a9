package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

// StateTopic receives the current session-window snapshot for mosque
// display boards.
const StateTopic = "mizan/sessions/state"

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// NewClient connects to the broker with auto-reconnect enabled.
func NewClient(brokerURL, clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return client, nil
}

// sessionState is the published per-window snapshot.
type sessionState struct {
	Session  string `json:"session"`
	Name     string `json:"name"`
	NameUrdu string `json:"name_urdu"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Active   bool   `json:"active"`
	Locked   bool   `json:"locked"`
}

type statePayload struct {
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	Available bool           `json:"available"`
	Sessions  []sessionState `json:"sessions,omitempty"`
}

// Announcer publishes today's window states on a fixed tick. Each tick is an
// independent snapshot, so a dropped publish needs no retry.
type Announcer struct {
	client mqtt.Client
	store  db.Store
}

func NewAnnouncer(client mqtt.Client, store db.Store) *Announcer {
	return &Announcer{client: client, store: store}
}

// Run publishes until ctx is cancelled.
func (a *Announcer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.publishOnce()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.publishOnce()
		}
	}
}

func (a *Announcer) publishOnce() {
	now := prayer.Now()
	payload := statePayload{
		Date: prayer.DateKey(now),
		Time: now.Format("15:04:05"),
	}

	timing, err := a.store.GetTimingByDate(payload.Date)
	if err == nil {
		if windows, werr := prayer.Windows(*timing, now); werr == nil {
			payload.Available = true
			for _, s := range prayer.Sessions {
				w := windows[s]
				payload.Sessions = append(payload.Sessions, sessionState{
					Session:  string(s),
					Name:     s.Name(),
					NameUrdu: s.NameUrdu(),
					Start:    w.Start.Format("15:04"),
					End:      w.End.Format("15:04"),
					Active:   w.Active,
					Locked:   w.Locked,
				})
			}
		} else {
			log.Warn().Err(werr).Str("date", payload.Date).Msg("not announcing malformed timing row")
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal session state")
		return
	}
	if token := a.client.Publish(StateTopic, 0, true, body); token.Wait() && token.Error() != nil {
		log.Warn().Err(token.Error()).Msg("failed to publish session state")
	}
}
