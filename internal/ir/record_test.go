package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_GetSetHas(t *testing.T) {
	r := NewRecord(userDescriptor(t))
	assert.False(t, r.Has("id"))
	assert.Equal(t, int64(0), r.Get("id"))
	assert.Equal(t, EnumValue{Name: "UNKNOWN", Number: 0}, r.Get("status"))
	assert.Equal(t, []MapEntry{}, r.Get("scores"))
	assert.Equal(t, []any{}, r.Get("tags"))
	assert.Nil(t, r.Get("missing"))

	require.NoError(t, r.Set("id", int64(7)))
	assert.True(t, r.Has("id"))
	assert.Equal(t, int64(7), r.Get("id"))

	r.Clear("id")
	assert.False(t, r.Has("id"))

	require.Error(t, r.Set("missing", 1))
	assert.Panics(t, func() { r.MustSet("missing", 1) })
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := NewRecord(userDescriptor(t)).
		MustSet("name", "ann").
		MustSet("id", int64(1)).
		MustSet("status", EnumValue{Name: "ACTIVE", Number: 1}).
		MustSet("scores", []MapEntry{{Key: "y", Value: int32(2)}, {Key: "x", Value: int32(1)}}).
		MustSet("tags", []any{"a", "b"})

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":1,"name":"ann","status":"ACTIVE","scores":[["y",2],["x",1]],"tags":["a","b"]}`,
		string(data))
	assert.Equal(t, `UserProfile{"id":1,"name":"ann","status":"ACTIVE","scores":[["y",2],["x",1]],"tags":["a","b"]}`, r.String())
}

func TestTableName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"UserProfile", "user_profile"},
		{"HTTPRequest", "http_request"},
		{"Order2Item", "order2_item"},
		{"user", "user"},
		{"already_snake", "already_snake"},
		{"pkg.Message", "pkg_message"},
		{"ÉtatCivil", "état_civil"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TableName(tt.in))
		})
	}
}
