package play

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/rpsplus/pkg/game"
	"laptudirm.com/x/rpsplus/pkg/judge"
)

// fixedBot plays the given moves in order and remembers what it was told.
type fixedBot struct {
	moves []game.Move
	seen  []bool
}

func (bot *fixedBot) Move(botBombUsed bool) game.Move {
	bot.seen = append(bot.seen, botBombUsed)
	move := bot.moves[0]
	if len(bot.moves) > 1 {
		bot.moves = bot.moves[1:]
	}
	return move
}

// oracleFunc adapts a function to the Oracle interface.
type oracleFunc func(game.Request) (*game.Response, error)

func (fn oracleFunc) Evaluate(_ context.Context, request game.Request) (*game.Response, error) {
	return fn(request)
}

func referee() Oracle {
	return judge.New(judge.Referee{}, judge.Config{Timeout: time.Second})
}

func failing(err error) (Oracle, *int) {
	calls := 0
	return oracleFunc(func(game.Request) (*game.Response, error) {
		calls++
		return nil, err
	}), &calls
}

func newLoop(oracle Oracle, moves ...game.Move) (*Loop, *fixedBot, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	bot := &fixedBot{moves: moves}
	loop := New(oracle, bot)
	loop.Logger = logrus.NewEntry(logger).WithField("session", "test")
	return loop, bot, hook
}

func TestRoundHeavyStone(t *testing.T) {
	loop, _, _ := newLoop(referee(), game.Scissors)

	verdict := loop.Round(context.Background(), "I throw a heavy stone")
	require.NoError(t, verdict.Err)

	assert.Equal(t, game.Rock, verdict.Response.UserMove)
	assert.Equal(t, game.Valid, verdict.Response.Status)
	assert.Equal(t, game.UserWins, verdict.Response.Result)

	state := loop.Snapshot()
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, 1, state.UserWins)
	assert.False(t, state.UserBombUsed)
	assert.False(t, state.BotBombUsed)
}

func TestRoundSecondBombIsWasted(t *testing.T) {
	loop, _, _ := newLoop(referee(), game.Rock)

	require.NoError(t, loop.Round(context.Background(), "bomb").Err)
	require.True(t, loop.Snapshot().UserBombUsed)

	verdict := loop.Round(context.Background(), "Nuke them!")
	require.NoError(t, verdict.Err)
	assert.Equal(t, game.Bomb, verdict.Response.UserMove)
	assert.Equal(t, game.Invalid, verdict.Response.Status)
	assert.Equal(t, game.TurnWasted, verdict.Response.Result)

	state := loop.Snapshot()
	assert.Equal(t, 3, state.Round)
	assert.Equal(t, 1, state.UserWins)
	assert.Equal(t, 1, state.Wasted)
	assert.True(t, state.UserBombUsed)
}

func TestRoundBombAgainstBomb(t *testing.T) {
	loop, _, _ := newLoop(referee(), game.Bomb)

	verdict := loop.Round(context.Background(), "dynamite")
	require.NoError(t, verdict.Err)
	assert.Equal(t, game.Draw, verdict.Response.Result)

	state := loop.Snapshot()
	assert.Equal(t, 1, state.Draws)
	assert.True(t, state.UserBombUsed)
	assert.True(t, state.BotBombUsed)
}

func TestRoundUndecidedLeavesState(t *testing.T) {
	for _, cause := range []error{
		fmt.Errorf("%w: connection refused", judge.ErrUnavailable),
		fmt.Errorf("%w: no json object", judge.ErrMalformed),
	} {
		oracle, calls := failing(cause)
		loop, _, hook := newLoop(oracle, game.Bomb)

		verdict := loop.Round(context.Background(), "rock")
		assert.ErrorIs(t, verdict.Err, cause)
		assert.Equal(t, 1, *calls)

		assert.Equal(t, game.NewState(), loop.Snapshot(), "offered bomb is not used up by an undecided round")
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	}
}

func TestRoundSchemaViolation(t *testing.T) {
	oracle, _ := failing(&judge.SchemaError{
		Field:   "round_result",
		Problem: `unrecognized outcome "User win"`,
		Update:  game.StateUpdate{UserBombUsed: true},
	})
	loop, _, hook := newLoop(oracle, game.Paper)

	verdict := loop.Round(context.Background(), "bomb")
	assert.ErrorIs(t, verdict.Err, judge.ErrSchema)

	state := loop.Snapshot()
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, 1, state.Failed)
	assert.Equal(t, 0, state.Scored())
	assert.True(t, state.UserBombUsed)
	assert.False(t, state.BotBombUsed)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, `unrecognized outcome "User win"`, entry.Data["round_result"])
	assert.Equal(t, 1, entry.Data["round"])
}

func TestRoundUsesUpOfferedBotBomb(t *testing.T) {
	// An oracle which never reports the bot's bomb as used.
	oracle := oracleFunc(func(request game.Request) (*game.Response, error) {
		return &game.Response{
			Round:    request.RoundNumber,
			UserMove: game.Rock,
			Status:   game.Valid,
			Reason:   "rock",
			BotMove:  request.BotMove,
			Result:   game.BotWins,
		}, nil
	})

	loop, bot, _ := newLoop(oracle, game.Bomb, game.Rock)

	require.NoError(t, loop.Round(context.Background(), "rock").Err)
	require.NoError(t, loop.Round(context.Background(), "rock").Err)

	assert.True(t, loop.Snapshot().BotBombUsed)
	assert.Equal(t, []bool{false, true}, bot.seen)
}

func TestRoundAfterTermination(t *testing.T) {
	oracle, calls := failing(errors.New("unused"))
	loop, _, _ := newLoop(oracle, game.Rock)

	require.NoError(t, loop.Run(context.Background(), strings.NewReader("quit\n"), &bytes.Buffer{}))
	assert.Equal(t, Terminated, loop.State())

	assert.Error(t, loop.Round(context.Background(), "rock").Err)
	assert.Equal(t, 0, *calls)
}

func TestRunQuits(t *testing.T) {
	loop, _, _ := newLoop(referee(), game.Scissors)

	var out bytes.Buffer
	input := "I throw a heavy stone\n\n   QuIt  \npaper\n"
	require.NoError(t, loop.Run(context.Background(), strings.NewReader(input), &out))

	assert.Equal(t, Terminated, loop.State())
	assert.Equal(t, 2, loop.Snapshot().Round, "input after quit is never played")

	text := out.String()
	assert.True(t, strings.HasPrefix(text, Banner+"\n"))
	assert.Contains(t, text, "Game ended.\nFinal Results:\n")
	assert.Equal(t, 3, strings.Count(text, Prompt))
	assert.Contains(t, text, `"round_result": "User wins"`)
	assert.Contains(t, text, `"user_move_interpreted": "rock"`)
	assert.True(t, strings.HasSuffix(text, "Overall Winner: User\n"))
}

func TestRunEndsWithInput(t *testing.T) {
	loop, _, _ := newLoop(referee(), game.Rock)

	var out bytes.Buffer
	require.NoError(t, loop.Run(context.Background(), strings.NewReader("scissors"), &out))

	assert.Equal(t, Terminated, loop.State())
	assert.Equal(t, 1, loop.Snapshot().BotWins)
	assert.True(t, strings.HasSuffix(out.String(), "Overall Winner: Bot\n"))
}

func TestRunSurvivesLongLines(t *testing.T) {
	oracle := referee()
	calls := 0
	counting := oracleFunc(func(request game.Request) (*game.Response, error) {
		calls++
		return oracle.Evaluate(context.Background(), request)
	})
	loop, _, hook := newLoop(counting, game.Scissors)

	var out bytes.Buffer
	input := strings.Repeat("a", 70*1024) + " rock\nrock\nquit\n"
	require.NoError(t, loop.Run(context.Background(), strings.NewReader(input), &out))

	assert.Equal(t, 1, calls, "the long line is never judged")

	state := loop.Snapshot()
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, 1, state.UserWins)

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, TooLong))
	assert.Equal(t, 3, strings.Count(text, Prompt))
	assert.True(t, strings.HasSuffix(text, "Overall Winner: User\n"))

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["length"] == 70*1024+len(" rock") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestRunReportsFailures(t *testing.T) {
	oracle, calls := failing(fmt.Errorf("%w: deadline", judge.ErrUnavailable))
	loop, _, _ := newLoop(oracle, game.Rock)

	var out bytes.Buffer
	require.NoError(t, loop.Run(context.Background(), strings.NewReader("rock\nrock\n"), &out))

	assert.Equal(t, 2, *calls)
	assert.Equal(t, 2, strings.Count(out.String(), Unreachable))
	assert.Equal(t, 1, loop.Snapshot().Round)
	assert.True(t, strings.HasSuffix(out.String(), "Overall Result: Draw\n"))
}

func TestRunStopsOnCancel(t *testing.T) {
	oracle, calls := failing(errors.New("unused"))
	loop, _, _ := newLoop(oracle, game.Rock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, loop.Run(ctx, strings.NewReader("rock\n"), &out))
	assert.Equal(t, Terminated, loop.State())
	assert.Equal(t, 0, *calls)
	assert.Contains(t, out.String(), "Overall Result: Draw")
}

func TestSessionInvariants(t *testing.T) {
	inputs := []string{
		"rock", "paper", "scissors", "bomb", "Nuke them!", "xyz",
		"a sheet of paper", "blade", "boulder", "I don't know",
	}

	logger, _ := test.NewNullLogger()
	loop := New(referee(), game.NewBot(42))
	loop.Logger = logrus.NewEntry(logger)

	var previous game.State
	botBombs := 0
	for i := 0; i < 500; i++ {
		verdict := loop.Round(context.Background(), inputs[i%len(inputs)])
		require.NoError(t, verdict.Err)

		if verdict.Response.BotMove == game.Bomb {
			botBombs++
		}

		state := loop.Snapshot()
		assert.True(t, !previous.UserBombUsed || state.UserBombUsed)
		assert.True(t, !previous.BotBombUsed || state.BotBombUsed)
		assert.Equal(t, state.Round-1, state.Scored()+state.Wasted+state.Failed)
		previous = state
	}

	assert.LessOrEqual(t, botBombs, 1)
}
