package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNeverClearsFlags(t *testing.T) {
	state := State{Round: 3, UserBombUsed: true}

	merged := state.Merge(StateUpdate{UserBombUsed: false, BotBombUsed: false})
	assert.True(t, merged.UserBombUsed)
	assert.False(t, merged.BotBombUsed)

	merged = merged.Merge(StateUpdate{BotBombUsed: true})
	assert.True(t, merged.UserBombUsed)
	assert.True(t, merged.BotBombUsed)

	merged = merged.Merge(StateUpdate{})
	assert.True(t, merged.UserBombUsed)
	assert.True(t, merged.BotBombUsed)

	// the receiver is a value and stays untouched
	assert.False(t, state.BotBombUsed)
}

func TestRecord(t *testing.T) {
	tests := []struct {
		result Outcome
		scored bool
		want   State
	}{
		{UserWins, true, State{Round: 1, UserWins: 1}},
		{BotWins, true, State{Round: 1, BotWins: 1}},
		{Draw, true, State{Round: 1, Draws: 1}},
		{TurnWasted, false, State{Round: 1, Wasted: 1}},
		{Outcome("user wins"), false, State{Round: 1}},
		{Outcome("Stalemate"), false, State{Round: 1}},
		{Outcome(""), false, State{Round: 1}},
	}

	for _, test := range tests {
		t.Run(string(test.result), func(t *testing.T) {
			got, scored := NewState().Record(test.result)
			assert.Equal(t, test.scored, scored)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	snapshot := store.Snapshot()

	store.Merge(StateUpdate{UserBombUsed: true})
	store.Record(UserWins)
	store.AdvanceRound()

	assert.Equal(t, NewState(), snapshot)

	current := store.Snapshot()
	assert.Equal(t, 2, current.Round)
	assert.True(t, current.UserBombUsed)
	assert.Equal(t, 1, current.UserWins)
}

func TestStoreScoreConservation(t *testing.T) {
	results := []Outcome{UserWins, TurnWasted, Draw, "Nobody", BotWins, BotWins, TurnWasted}

	store := NewStore()
	for i, result := range results {
		before := store.Snapshot().Scored()
		scored := store.Record(result)
		store.AdvanceRound()

		state := store.Snapshot()
		require.Equal(t, i+2, state.Round)
		require.LessOrEqual(t, state.Scored(), state.Round-1)
		if scored {
			require.Equal(t, before+1, state.Scored())
		} else {
			require.Equal(t, before, state.Scored())
		}
	}

	state := store.Snapshot()
	assert.Equal(t, 1, state.UserWins)
	assert.Equal(t, 2, state.BotWins)
	assert.Equal(t, 1, state.Draws)
	assert.Equal(t, 2, state.Wasted)
	assert.Equal(t, BotWon, state.Winner())
}

func TestWinner(t *testing.T) {
	assert.Equal(t, UserWon, State{UserWins: 2, BotWins: 1}.Winner())
	assert.Equal(t, BotWon, State{UserWins: 0, BotWins: 1, Draws: 5}.Winner())
	assert.Equal(t, Tied, State{UserWins: 3, BotWins: 3}.Winner())
	assert.Equal(t, Tied, NewState().Winner())

	assert.Equal(t, "User", UserWon.String())
	assert.Equal(t, "Bot", BotWon.String())
	assert.Equal(t, "Draw", Tied.String())
}

func TestNewRequest(t *testing.T) {
	snapshot := State{Round: 4, UserBombUsed: true, UserWins: 2}
	request := NewRequest(snapshot, Paper, "  I throw a heavy stone!! ")

	assert.Equal(t, Request{
		RoundNumber:  4,
		UserInput:    "  I throw a heavy stone!! ",
		BotMove:      Paper,
		UserBombUsed: true,
		BotBombUsed:  false,
	}, request)
}

func TestSelectBotMove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seen := map[Move]int{}
	for i := 0; i < 4000; i++ {
		seen[SelectBotMove(rng, false)]++
	}
	for _, move := range []Move{Rock, Paper, Scissors, Bomb} {
		assert.Greater(t, seen[move], 800, "move %s is underrepresented", move)
	}

	for i := 0; i < 4000; i++ {
		require.NotEqual(t, Bomb, SelectBotMove(rng, true))
	}
}

func TestBotBombSingleUse(t *testing.T) {
	bot := NewBot(42)
	state := NewState()

	bombs := 0
	for round := 0; round < 10_000; round++ {
		move := bot.Move(state.BotBombUsed)
		if move == Bomb {
			bombs++
		}
		state = state.Merge(StateUpdate{BotBombUsed: move == Bomb})
	}

	assert.Equal(t, 1, bombs)
}

func TestParseMove(t *testing.T) {
	for _, token := range []string{"rock", "paper", "scissors", "bomb", "unclear"} {
		move, err := ParseMove(token)
		require.NoError(t, err)
		assert.Equal(t, Move(token), move)
	}

	for _, token := range []string{"Rock", "lizard", "", " rock"} {
		_, err := ParseMove(token)
		assert.Error(t, err, token)
	}

	assert.True(t, Bomb.IsReal())
	assert.False(t, Unclear.IsReal())
}

func TestParseMoveStatus(t *testing.T) {
	for _, token := range []string{"VALID", "INVALID", "UNCLEAR"} {
		status, err := ParseMoveStatus(token)
		require.NoError(t, err)
		assert.Equal(t, MoveStatus(token), status)
	}

	_, err := ParseMoveStatus("valid")
	assert.Error(t, err)
}
