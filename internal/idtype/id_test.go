package idtype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New[ActionEventID]()
		assert.NotZero(t, id)
	}
}

func TestMarshalJSON_DecimalString(t *testing.T) {
	id := ActionEventID(1234567890123)
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"1234567890123"`, string(data))
}

func TestUnmarshalJSON_RoundTrip(t *testing.T) {
	var id ActionEventID
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
	assert.Equal(t, ActionEventID(42), id)
}

func TestUnmarshalJSON_AcceptsBareNumber(t *testing.T) {
	var id UserID
	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	assert.Equal(t, UserID(42), id)
}

type wrapper struct {
	ID ActionRuleID `json:"id"`
}

func TestMarshalJSON_InStruct(t *testing.T) {
	w := wrapper{ID: 99}
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"99"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, w, out)
}
