package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	"github.com/claritybank/badge-server/internal/badges"
)

func TestRabbitMQPublisher_PublishBadgeAwarded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rabbitmq integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := rabbitmq.Run(ctx,
		"rabbitmq:3.13-management",
		rabbitmq.WithAdminUsername("guest"),
		rabbitmq.WithAdminPassword("guest"),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.AmqpURL(ctx)
	require.NoError(t, err)

	cfg := RabbitMQConfig{URL: url, Exchange: "claritybank.badges", RoutingKey: "badges.awarded"}
	publisher, err := NewRabbitMQPublisher(cfg)
	require.NoError(t, err)
	defer publisher.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	userID := uuid.Must(uuid.NewV4())
	event, err := NewBadgeAwarded(userID, badges.EarnedBadge{
		BadgeID:     badges.BadgeZeroDebt,
		DisplayName: "Zero Debt",
		EarnedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, publisher.PublishBadgeAwarded(ctx, event))

	select {
	case msg := <-deliveries:
		var got BadgeAwarded
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, event.EventID, got.EventID)
		assert.Equal(t, "zero-debt", got.BadgeID)
		assert.Equal(t, userID.String(), got.UserID)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for badge event")
	}
}
