package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/preferences"
)

func TestHitPoints_FollowsPreference(t *testing.T) {
	assert.Equal(t, enginev1.HitPointsFixed, hitPoints(preferences.MonsterHPFixed))
	assert.Equal(t, enginev1.HitPointsRolled, hitPoints(preferences.MonsterHPRolled))
	assert.Equal(t, enginev1.HitPointsDefault, hitPoints(""))
	assert.Equal(t, enginev1.HitPointsDefault, hitPoints("average"))
}

func TestElapsedSeconds_RoundsUpToWholeRounds(t *testing.T) {
	assert.Equal(t, 6, elapsedSeconds(time.Second))
	assert.Equal(t, 60, elapsedSeconds(time.Minute))
	assert.Equal(t, 66, elapsedSeconds(time.Minute+time.Second))
	assert.Equal(t, 5400, elapsedSeconds(90*time.Minute))
	assert.Equal(t, 6, elapsedSeconds(time.Millisecond))
}
