package notify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/initiative/internal/notify"
)

func TestFailure(t *testing.T) {
	m := notify.Failure("next_turn", errors.New("boom"))
	assert.Equal(t, "Failed to execute next_turn", m.Title)
	assert.Equal(t, "boom", m.Content)
	assert.Equal(t, notify.SeverityDanger, m.Severity)
	assert.Equal(t, "OK", m.AffirmativeButton.Label)
}

func TestBox_ShowClear(t *testing.T) {
	var b notify.Box
	_, ok := b.Current()
	assert.False(t, ok)

	var seen []*notify.Message
	unsubscribe := b.Subscribe(func(m *notify.Message) { seen = append(seen, m) })

	b.Show(notify.Message{Title: "a"})
	cur, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Title)

	b.Clear()
	_, ok = b.Current()
	assert.False(t, ok)

	unsubscribe()
	b.Show(notify.Message{Title: "b"})

	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0].Title)
	assert.Nil(t, seen[1])
}
