package logger

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var fields map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &fields))
	return fields
}

func TestJSONFields(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	log := NewWithOutput("ticketprice", &buf)

	log.WithMarket("0xcast").Info("quoted")
	fields := decodeLine(t, &buf)

	assert.Equal(t, "quoted", fields["message"])
	assert.Equal(t, "info", fields["level"])
	assert.Equal(t, "ticketprice", fields["component"])
	assert.Equal(t, "0xcast", fields["market"])
	assert.Contains(t, fields, "timestamp")
}

func TestWithTier(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	log := NewWithOutput("ticketprice", &buf)

	log.WithTier(3, true).Warn("classified")
	fields := decodeLine(t, &buf)

	assert.Equal(t, float64(3), fields["tier"])
	assert.Equal(t, true, fields["classified"])
}

func TestLevelFromEnv(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"WARN":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"":      logrus.InfoLevel,
		"loud":  logrus.InfoLevel,
	}
	for value, want := range cases {
		t.Setenv(EnvLogLevel, value)
		assert.Equal(t, want, New("test").GetLevel(), value)
	}

	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	NewWithOutput("test", &buf).Info("dropped")
	assert.Zero(t, buf.Len())
}
