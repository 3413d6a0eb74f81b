package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := m.Send(context.Background(), Message{To: "john@acme.com", Subject: "Hi", Body: "code 123"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"to":"john@acme.com"`)
	assert.Contains(t, buf.String(), `"subject":"Hi"`)
}
