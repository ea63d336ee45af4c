package kafka

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(Config{})
	assert.Error(t, err)
}

func TestProducer_WriterPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	a := p.writer("topic-a")
	assert.Same(t, a, p.writer("topic-a"))
	assert.NotSame(t, a, p.writer("topic-b"))
	assert.Len(t, p.writers, 2)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestConfig_SASLMechanism(t *testing.T) {
	tests := []struct {
		mechanism string
		wantName  string
		wantErr   bool
	}{
		{mechanism: "", wantName: ""},
		{mechanism: "plain", wantName: "PLAIN"},
		{mechanism: "SCRAM-SHA-256", wantName: "SCRAM-SHA-256"},
		{mechanism: "SCRAM-SHA-512", wantName: "SCRAM-SHA-512"},
		{mechanism: "GSSAPI", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.mechanism, func(t *testing.T) {
			cfg := Config{SASLMechanism: tt.mechanism, SASLUsername: "u", SASLPassword: "p", TLS: true}
			m, err := cfg.saslMechanism()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, m)
				return
			}
			assert.Equal(t, tt.wantName, m.Name())

			transport, err := cfg.transport()
			require.NoError(t, err)
			require.NotNil(t, transport.TLS)
		})
	}
}

func TestNewConsumer(t *testing.T) {
	_, err := NewConsumer(Config{}, "events", nil, slog.Default())
	assert.Error(t, err)

	c, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}}, "events", nil, slog.Default())
	require.NoError(t, err)
	assert.False(t, c.grouped)
	require.NoError(t, c.Close())
}
