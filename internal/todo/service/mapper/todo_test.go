package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tododomain "github.com/AlibekovAA/todo-rpc/internal/todo/domain"
)

func TestFormatTimestamp_UTCMillis(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 3, 1, 15, 4, 5, 123456789, loc)

	assert.Equal(t, "2024-03-01T12:04:05.123Z", FormatTimestamp(ts))
	assert.Equal(t, "2024-03-01T12:04:05.000Z", FormatTimestamp(ts.Truncate(time.Second)))
}

func TestTodoToWire_TimestampsAreStrings(t *testing.T) {
	text := "buy milk"
	todo := tododomain.Todo{
		ID:        "t1",
		Text:      &text,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
	}

	b, err := json.Marshal(TodoToWire(todo))
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	assert.IsType(t, "", generic["createdAt"])
	assert.IsType(t, "", generic["updatedAt"])
	assert.Equal(t, "2024-01-02T03:04:05.000Z", generic["createdAt"])
	assert.Equal(t, "buy milk", generic["text"])
}

func TestTodosToWire_EmptyIsNotNil(t *testing.T) {
	out := TodosToWire(nil)
	require.NotNil(t, out)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDeleteResultToWire(t *testing.T) {
	out := DeleteResultToWire(tododomain.DeleteResult{})
	assert.Nil(t, out.Todo)
	assert.Zero(t, out.RowsAffected)

	out = DeleteResultToWire(tododomain.DeleteResult{
		Deleted:      &tododomain.Todo{ID: "t1"},
		RowsAffected: 1,
	})
	require.NotNil(t, out.Todo)
	assert.Equal(t, "t1", out.Todo.ID)
	assert.Nil(t, out.Todo.Text)
	assert.EqualValues(t, 1, out.RowsAffected)
}
