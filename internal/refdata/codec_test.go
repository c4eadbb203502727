package refdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refdataservice/internal/refdata"
)

func TestEncodeState_Layout(t *testing.T) {
	s := refdata.NewState()
	s.Refs["ETH"] = refdata.RateRecord{Rate: 1, ResolveTime: 2, RequestID: 3}

	payload, err := refdata.EncodeState(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"refs":{"ETH":{"rate":1,"resolve_time":2,"request_id":3}}}`, string(payload))
}

func TestDecodeState(t *testing.T) {
	t.Run("null refs decode to empty mapping", func(t *testing.T) {
		s, err := refdata.DecodeState([]byte(`{"refs":null}`))
		require.NoError(t, err)
		assert.NotNil(t, s.Refs)
		assert.Empty(t, s.Refs)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, err := refdata.DecodeState([]byte(`{"refs":`))
		assert.Error(t, err)
	})
}
