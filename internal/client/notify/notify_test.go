package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/crmkeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_AddRemoveClear(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(&buf, "info")
	require.NoError(t, err)

	c := NewCenter(log)
	fixed := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	ctx := context.Background()

	a := c.Success(ctx, "Lead created successfully")
	b := c.Error(ctx, "Failed to delete lead")
	c.Add(ctx, LevelWarning, "Session expiring soon")

	_, err = uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, fixed, a.Timestamp)

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, LevelSuccess, list[0].Level)
	assert.Equal(t, LevelError, list[1].Level)

	c.Remove(b.ID)
	c.Remove("unknown")
	assert.Len(t, c.List(), 2)

	c.Clear()
	assert.Empty(t, c.List())

	out := buf.String()
	assert.Contains(t, out, "Lead created successfully")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "level=WARN")
}
