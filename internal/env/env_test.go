package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	t.Setenv("SIGNOFF_TEST_STRING", "  value ")
	t.Setenv("SIGNOFF_TEST_INT", "7")
	t.Setenv("SIGNOFF_TEST_BAD_INT", "-1")
	t.Setenv("SIGNOFF_TEST_DURATION", "2s")
	t.Setenv("SIGNOFF_TEST_LIST", "payouts, ,invoices")

	assert.Equal(t, "value", String("SIGNOFF_TEST_STRING", "def"))
	assert.Equal(t, "def", String("SIGNOFF_TEST_MISSING", "def"))
	assert.Equal(t, 7, Int("SIGNOFF_TEST_INT", 1))
	assert.Equal(t, 1, Int("SIGNOFF_TEST_BAD_INT", 1))
	assert.Equal(t, 2*time.Second, Duration("SIGNOFF_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, Duration("SIGNOFF_TEST_MISSING", time.Second))
	assert.Equal(t, []string{"payouts", "invoices"}, List("SIGNOFF_TEST_LIST", nil))
	assert.Equal(t, []string{"a"}, List("SIGNOFF_TEST_MISSING", []string{"a"}))
}
