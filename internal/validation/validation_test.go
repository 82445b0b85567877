package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-tracker/internal/apperr"
)

func TestEmail(t *testing.T) {
	assert.True(t, Email("user@example.com"))
	assert.False(t, Email("user@example"))
	assert.False(t, Email("user example.com"))
	assert.False(t, Email("@example.com"))
}

func TestPassword(t *testing.T) {
	assert.False(t, Password("12345"))
	assert.True(t, Password("123456"))
}

func TestUUID(t *testing.T) {
	assert.True(t, UUID("3f1c2b9e-8d4a-4c1b-9e2f-1a2b3c4d5e6f"))
	assert.False(t, UUID("3f1c2b9e8d4a4c1b9e2f1a2b3c4d5e6f"))
	assert.False(t, UUID("not-a-uuid"))
	assert.False(t, UUID("3f1c2b9e-8d4a-0c1b-9e2f-1a2b3c4d5e6f"), "version 0")
}

func TestDecode(t *testing.T) {
	p, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = Decode([]byte(`{"title":`))
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid JSON syntax")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = Decode([]byte(`[1,2]`))
	assert.EqualError(t, err, "Request body must be a JSON object")

	p, err = Decode([]byte(` {"a": null, "b": 1} `))
	require.NoError(t, err)
	assert.True(t, p.Has("a"))
	assert.True(t, p.IsNull("a"))
	assert.False(t, p.IsNull("b"))
	assert.False(t, p.Has("c"))
}

func mustDecode(t *testing.T, body string) Payload {
	t.Helper()
	p, err := Decode([]byte(body))
	require.NoError(t, err)
	return p
}

func TestRequiredString(t *testing.T) {
	cases := []struct {
		body string
		want string
		err  string
	}{
		{`{"title":"Buy milk"}`, "Buy milk", ""},
		{`{}`, "", "Title is required"},
		{`{"title":null}`, "", "Title is required"},
		{`{"title":""}`, "", "Title is required"},
		{`{"title":"   "}`, "", "Title is required"},
		{`{"title":0}`, "", "Title is required"},
		{`{"title":false}`, "", "Title is required"},
		{`{"title":42}`, "", "Title must be a string"},
		{`{"title":["x"]}`, "", "Title must be a string"},
	}
	for _, tc := range cases {
		got, err := mustDecode(t, tc.body).RequiredString("title", "Title")
		if tc.err != "" {
			assert.EqualError(t, err, tc.err, tc.body)
			continue
		}
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.want, got)
	}
}

func TestOptionalString(t *testing.T) {
	p := mustDecode(t, `{"description":null,"title":null,"note":"hi","bad":3}`)

	v, present, err := p.OptionalString("description", "Description", true)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Nil(t, v)

	_, _, err = p.OptionalString("title", "Title", false)
	assert.EqualError(t, err, "Title must be a string")

	v, present, err = p.OptionalString("note", "Note", true)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "hi", *v)

	_, _, err = p.OptionalString("bad", "Bad", true)
	assert.EqualError(t, err, "Bad must be a string")

	_, present, err = p.OptionalString("missing", "Missing", true)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestOptionalBool(t *testing.T) {
	p := mustDecode(t, `{"completed":true,"bad":"yes"}`)

	v, present, err := p.OptionalBool("completed", "Completed")
	require.NoError(t, err)
	assert.True(t, present)
	assert.True(t, v)

	_, _, err = p.OptionalBool("bad", "Completed")
	assert.EqualError(t, err, "Completed must be a boolean")
}

func TestOptionalEnum(t *testing.T) {
	allowed := []string{"Ready", "InProgress", "Done"}
	p := mustDecode(t, `{"status":"Done","other":"Archived","num":1}`)

	v, present, err := p.OptionalEnum("status", "Status", allowed)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "Done", v)

	_, _, err = p.OptionalEnum("other", "Status", allowed)
	assert.EqualError(t, err, "Status must be one of: Ready, InProgress, Done")

	_, _, err = p.OptionalEnum("num", "Status", allowed)
	assert.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	p := mustDecode(t, `{"iso":"2024-05-01T10:00:00Z","day":"2024-05-01","ms":1714557600000,"nil":null,"bad":"soon","empty":"","obj":{}}`)

	v, present, err := p.OptionalDate("iso", "Due date")
	require.NoError(t, err)
	assert.True(t, present)
	assert.True(t, v.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	v, _, err = p.OptionalDate("day", "Due date")
	require.NoError(t, err)
	assert.True(t, v.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	v, _, err = p.OptionalDate("ms", "Due date")
	require.NoError(t, err)
	assert.True(t, v.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	v, present, err = p.OptionalDate("nil", "Due date")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Nil(t, v)

	for _, key := range []string{"bad", "empty", "obj"} {
		_, _, err = p.OptionalDate(key, "Due date")
		assert.EqualError(t, err, "Due date must be a valid date", key)
	}
}

func TestUUIDString(t *testing.T) {
	p := mustDecode(t, `{"ok":"3f1c2b9e-8d4a-4c1b-9e2f-1a2b3c4d5e6f","bad":"123"}`)

	v, err := p.UUIDString("ok", "Category ID")
	require.NoError(t, err)
	assert.Equal(t, "3f1c2b9e-8d4a-4c1b-9e2f-1a2b3c4d5e6f", v)

	_, err = p.UUIDString("bad", "Category ID")
	assert.EqualError(t, err, "Category ID must be a valid UUID")

	_, err = p.UUIDString("missing", "Category ID")
	assert.EqualError(t, err, "Category ID is required")
}
