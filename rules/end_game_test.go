package rules

import (
	"testing"
	"time"

	"github.com/snakefield/engine/controller/pb"
	"github.com/stretchr/testify/require"
)

func TestCheckForGameOver(t *testing.T) {
	s := newSession()
	require.False(t, CheckForGameOver(s))
	require.Nil(t, BuildSummary(s))

	EndSession(s, &pb.Death{Turn: 1, Cause: DeathCauseWallCollision}, epoch)
	require.True(t, CheckForGameOver(s))
}

func TestBuildSummary(t *testing.T) {
	s := newSession()
	s.Score = 40
	s.Turn = 12
	s.Mode = pb.ControlPhone
	EndSession(s, &pb.Death{Turn: 12, Cause: DeathCauseSnakeSelfCollision}, epoch.Add(time.Minute))

	sum := BuildSummary(s)
	require.NotNil(t, sum)
	require.Equal(t, &pb.Summary{
		ID:          "test",
		Score:       40,
		Length:      3,
		Turns:       12,
		Cause:       DeathCauseSnakeSelfCollision,
		ControlMode: "Phone",
		Width:       200,
		Height:      200,
		StartedAt:   epoch.UnixNano(),
		EndedAt:     epoch.Add(time.Minute).UnixNano(),
	}, sum)
	require.Equal(t, time.Minute, sum.Duration())
}
