package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "12ms", FormatDuration(12*time.Millisecond+300*time.Microsecond))
	assert.Equal(t, "2.5s", FormatDuration(2540*time.Millisecond))
	assert.Equal(t, "4m", FormatDuration(4*time.Minute+10*time.Second))
	assert.Equal(t, "1h 5m", FormatDuration(time.Hour+5*time.Minute))
	assert.Equal(t, "2d 3h 0m", FormatDuration(51*time.Hour))
}
