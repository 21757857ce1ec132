package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBack(t *testing.T) {
	t.Setenv("ORDERDESK_TEST_VALUE", "")
	assert.Equal(t, "fallback", Get("ORDERDESK_TEST_VALUE", "fallback"))

	t.Setenv("ORDERDESK_TEST_VALUE", "set")
	assert.Equal(t, "set", Get("ORDERDESK_TEST_VALUE", "fallback"))
}

func TestFirstPrefersEarlierKeys(t *testing.T) {
	t.Setenv("ORDERDESK_A", "")
	t.Setenv("ORDERDESK_B", "b")
	t.Setenv("ORDERDESK_C", "c")
	assert.Equal(t, "b", First("none", "ORDERDESK_A", "ORDERDESK_B", "ORDERDESK_C"))
	assert.Equal(t, "none", First("none", "ORDERDESK_A"))
}
