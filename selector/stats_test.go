package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	session := NewSession(3)

	require.Equal(t, 3, session.ArmCount())
	require.Equal(t, 0.0, session.Reward())
	require.Equal(t, 0, session.Steps())
	require.Empty(t, session.SelfHistory())
	require.Empty(t, session.OpponentHistory())
	for _, arm := range session.Arms() {
		require.Equal(t, ArmStats{Wins: 1, Losses: 1}, arm)
		require.Equal(t, 2, arm.Pulls())
	}
}

func TestSessionObserve(t *testing.T) {
	t.Run("rewarded pull counts a win", func(t *testing.T) {
		session := NewSession(3)
		delta := session.observe(1, 1, 1, 2)

		require.Equal(t, 1.0, delta)
		require.Equal(t, 1.0, session.Reward())
		require.Equal(t, ArmStats{Wins: 2, Losses: 1}, session.Arm(1))
		require.Equal(t, ArmStats{Wins: 1, Losses: 1, OpponentPulls: 1}, session.Arm(2))
		require.Equal(t, []int{1}, session.SelfHistory())
		require.Equal(t, []int{2}, session.OpponentHistory())
	})

	t.Run("unrewarded pull on a shared arm updates both counts", func(t *testing.T) {
		session := NewSession(3)
		delta := session.observe(1, 0, 2, 2)

		require.Equal(t, 0.0, delta)
		require.Equal(t, ArmStats{Wins: 1, Losses: 2, OpponentPulls: 1}, session.Arm(2))
	})

	t.Run("streaks start counting at step 3", func(t *testing.T) {
		session := NewSession(3)
		session.observe(1, 0, 1, 0)
		session.observe(2, 0, 1, 0)
		require.Equal(t, 0, session.Arm(1).SelfStreak, "Step 2 should not move streaks")
		require.Equal(t, 0, session.Arm(0).OpponentStreak, "Step 2 should not move streaks")

		session.observe(3, 0, 1, 0)
		require.Equal(t, 1, session.Arm(1).SelfStreak)
		require.Equal(t, 1, session.Arm(0).OpponentStreak)

		session.observe(4, 0, 1, 0)
		require.Equal(t, 2, session.Arm(1).SelfStreak)
		require.Equal(t, 2, session.Arm(0).OpponentStreak)
	})

	t.Run("streak resets when the choice changes", func(t *testing.T) {
		session := NewSession(3)
		session.observe(1, 0, 1, 0)
		session.observe(2, 0, 2, 0)
		session.arms[2].SelfStreak = 4
		session.arms[1].OpponentStreak = 4

		session.observe(3, 0, 2, 0)
		require.Equal(t, 5, session.Arm(2).SelfStreak)

		session.observe(4, 0, 0, 1)
		require.Equal(t, 0, session.Arm(0).SelfStreak)
		require.Equal(t, 0, session.Arm(1).OpponentStreak)
		require.Equal(t, 5, session.Arm(2).SelfStreak, "Only the last pulled arm is touched")
	})

	t.Run("accessors return copies", func(t *testing.T) {
		session := NewSession(2)
		session.observe(1, 0, 0, 1)

		arms := session.Arms()
		arms[0].Wins = 100
		history := session.SelfHistory()
		history[0] = 1

		require.Equal(t, 1, session.Arm(0).Wins)
		require.Equal(t, []int{0}, session.SelfHistory())
	})
}

func TestSessionArmOutOfRange(t *testing.T) {
	session := NewSession(2)
	require.Panics(t, func() { session.Arm(2) }, "Should panic past the last arm")
	require.Panics(t, func() { session.Arm(-1) }, "Should panic on a negative arm")
}

func TestRepeated(t *testing.T) {
	require.False(t, repeated([]int{}, 2))
	require.False(t, repeated([]int{1, 1}, 3))
	require.True(t, repeated([]int{0, 1, 1, 1}, 3))
	require.False(t, repeated([]int{1, 0, 1}, 3))
	require.True(t, repeated([]int{2, 2}, 2))
}
