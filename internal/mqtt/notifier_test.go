package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type fakeToken struct {
	err     error
	timeout bool
}

func (t fakeToken) Wait() bool                     { return !t.timeout }
func (t fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakePublisher struct {
	token fakeToken
	sent  []published
}

func (f *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	f.sent = append(f.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return f.token
}

func TestPublishScheduleChange(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, "tenants")
	ev := model.ScheduleEvent{
		Type:       "schedule_changed",
		TenantID:   9,
		ScheduleID: 12,
		Action:     "created",
		Timestamp:  time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, n.PublishScheduleChange(ev))
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "tenants/9/schedules", pub.sent[0].topic)
	assert.Equal(t, byte(1), pub.sent[0].qos)

	var got model.ScheduleEvent
	require.NoError(t, json.Unmarshal(pub.sent[0].payload, &got))
	assert.Equal(t, ev, got)
}

func TestPublishScheduleChangeErrors(t *testing.T) {
	ev := model.ScheduleEvent{TenantID: 1, Action: "deleted"}

	broken := NewNotifier(&fakePublisher{token: fakeToken{err: errors.New("not connected")}}, "tenants")
	assert.ErrorContains(t, broken.PublishScheduleChange(ev), "not connected")

	slow := NewNotifier(&fakePublisher{token: fakeToken{timeout: true}}, "tenants")
	assert.ErrorContains(t, slow.PublishScheduleChange(ev), "timed out")
}
