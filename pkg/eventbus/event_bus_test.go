package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type testEvent struct {
	data string
}

type otherEvent struct {
	data string
}

func TestPublisher_Publish_NoMatchLogs(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *testEvent) {
		t.Error("should not be called")
	})
	publisher.Publish(&otherEvent{data: "test"})

	if output := logBuffer.String(); !strings.Contains(output, "no matching subscribers") {
		t.Errorf("expected no-subscribers warning, got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logrus.New())
	var got string
	publisher.Subscribe(func(e *testEvent) {
		got = e.data
	})
	publisher.Publish(&testEvent{data: "test"})
	if got != "test" {
		t.Errorf("expected %q, got %q", "test", got)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logrus.New())
	handler := func(e *testEvent) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	if publisher.SubscribersCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", publisher.SubscribersCount())
	}
	publisher.Unsubscribe(handler)
	publisher.Publish(&testEvent{data: "test"})
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
}

func TestPublisher_PanicRecovery(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *testEvent) {
		panic("boom")
	})
	publisher.Publish(&testEvent{data: "test"})

	if output := logBuffer.String(); !strings.Contains(output, "panicked") {
		t.Errorf("expected panic log, got: %q", output)
	}
}
