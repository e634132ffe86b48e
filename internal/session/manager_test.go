package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerPutGetRemove(t *testing.T) {
	m := NewManager()

	id := m.NewID()
	require.NotEmpty(t, id)
	assert.NotEqual(t, id, m.NewID())

	s, err := New(id, 1, "user", fourQuestions(), Config{SettleDelay: testSettle})
	require.NoError(t, err)

	entry := &Entry{Session: s, QuizTitle: "General Knowledge"}
	m.Put(entry)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, "General Knowledge", got.QuizTitle)

	m.Remove(id)
	_, ok = m.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestManagerRemoveClosesSession(t *testing.T) {
	m := NewManager()
	id := m.NewID()

	fired := false
	s, err := New(id, 1, "user", fourQuestions()[:1], Config{
		SettleDelay: testSettle,
		OnFinish:    func(int) { fired = true },
	})
	require.NoError(t, err)
	m.Put(&Entry{Session: s})

	_, err = s.SelectOption(0)
	require.NoError(t, err)

	// Teardown before the settle timer fires: the advance must not land.
	m.Remove(id)
	time.Sleep(10 * testSettle)
	assert.False(t, s.Finished())
	assert.False(t, fired)
}

func TestEntrySaveState(t *testing.T) {
	entry := &Entry{}
	assert.Equal(t, SaveState(""), entry.SaveState())

	entry.SetSaveState(SaveStatePending)
	assert.Equal(t, SaveStatePending, entry.SaveState())

	entry.SetSaveState(SaveStateFailed)
	assert.Equal(t, SaveStateFailed, entry.SaveState())
}
