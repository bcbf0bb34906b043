//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "cardledger/pkg/domain"
	"cardledger/pkg/testutil/containers"
)

func TestKafkaPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := containers.NewRedpandaContainer(t)
	const topic = "cardledger.audit.test"

	publisher, err := NewKafkaPublisher(ctx, []string{broker.Broker}, topic)
	require.NoError(t, err)
	defer publisher.Close()

	event := Event{
		Action:    EventTransferApplied,
		CardID:    id.NewCardID(),
		PeerID:    id.NewCardID(),
		HolderID:  id.NewHolderID(),
		Amount:    300,
		RequestID: "req-1",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, publisher.Emit(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)

	assert.Equal(t, event.HolderID.String(), string(records[0].Key), "events are keyed by holder")

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event.Action, got.Action)
	assert.Equal(t, event.Amount, got.Amount)
}
