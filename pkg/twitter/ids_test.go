package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"equal ids", "1580661436132757506", "1580661436132757506", 0},
		{"same length lexicographic", "1580661436132757506", "1580661436132757507", -1},
		{"shorter id is older", "999", "1000", -1},
		{"longer id is newer", "1000", "999", 1},
		{"plain string order would be wrong here", "9", "10", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareIDs(tt.a, tt.b))
			assert.Equal(t, -tt.expected, CompareIDs(tt.b, tt.a))
		})
	}
}

func TestMaxID(t *testing.T) {
	assert.Equal(t, "1000", MaxID("999", "1000"))
	assert.Equal(t, "1000", MaxID("1000", "999"))
	assert.Equal(t, "20", MaxID("20", "10"))
	assert.Equal(t, "5", MaxID("5", "5"))
}
