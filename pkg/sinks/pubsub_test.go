package sinks

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/samvad-hq/samvad-news-digest/internal/domain"
)

func TestPubSubSinkDelivers(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "digests"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	sink, err := newPubSubSink(ctx, SinkConfig{
		ID:   "digest-pubsub",
		Type: TypePubSub,
		PubSub: &PubSubSinkConfig{
			ProjectID: "test-project",
			Topic:     "digests",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubSink: %v", err)
	}

	err = sink.Deliver(ctx, Event{
		Origin:  domain.OriginLive,
		Summary: "digest",
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}
