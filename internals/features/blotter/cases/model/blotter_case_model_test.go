package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionPermissive(t *testing.T) {
	assert.True(t, CanTransition(StatusResolved, StatusFiled, false))
	assert.True(t, CanTransition(StatusFiled, StatusArbitration, false))
	assert.False(t, CanTransition(StatusFiled, "CLOSED", false))
}

func TestCanTransitionStrict(t *testing.T) {
	assert.True(t, CanTransition(StatusFiled, StatusDocketed, true))
	assert.True(t, CanTransition(StatusMediation, StatusConciliation, true))
	assert.False(t, CanTransition(StatusFiled, StatusResolved, true))
	assert.False(t, CanTransition(StatusResolved, StatusFiled, true))
	assert.False(t, CanTransition(StatusDismissed, StatusOngoing, true))
}
