package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGetWindowAvg(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 2.0, avg)
}

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}
