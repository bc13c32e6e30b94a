package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "Date", input: `"2024-03-01"`, expected: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", input: `""`, expected: time.Time{}},
		{name: "Month only", input: `"2024-03"`, wantErr: true},
		{name: "Not a string", input: `20240301`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Time)
		})
	}
}

func TestDateOnlyMarshal(t *testing.T) {
	b, err := json.Marshal(DateOnly{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(b))

	b, err = json.Marshal(DateOnly{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))
}
