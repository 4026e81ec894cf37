// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package play runs interactive rock-paper-scissors-plus sessions between
// a user and the bot, with every round decided by a judging oracle.
package play

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rpsplus/pkg/game"
	"laptudirm.com/x/rpsplus/pkg/judge"
)

// Oracle decides a single round. *judge.Judge is the usual implementation.
type Oracle interface {
	Evaluate(ctx context.Context, request game.Request) (*game.Response, error)
}

// Bot picks the bot's move for a round. *game.Bot is the usual
// implementation.
type Bot interface {
	Move(botBombUsed bool) game.Move
}

// Indicator shows that the oracle is at work, like a terminal spinner.
type Indicator interface {
	Start()
	Stop()
}

type State int

const (
	Active State = iota
	Terminated
)

func (state State) String() string {
	switch state {
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return "?"
	}
}

const (
	// Quit ends a session, matched without regard to case or surrounding
	// whitespace.
	Quit = "quit"

	Prompt = "Your move: "
	Banner = "Rock-Paper-Scissors Plus (type 'quit' to exit)"

	// MaxInput is the length in bytes of the longest move sent to the judge.
	MaxInput = 4096
)

// Diagnostics printed to the user when a round could not be decided.
const (
	Unreachable    = "the judge could not be reached"
	Unintelligible = "the judge's answer could not be understood"
	TooLong        = "that move is too long to judge"
)

// Loop is a single session. It owns its state store and must not be used
// from more than one goroutine.
type Loop struct {
	oracle Oracle
	bot    Bot
	store  *game.Store
	state  State

	// Spinner, if set, runs while the oracle is deciding a round.
	Spinner Indicator

	Logger *logrus.Entry
}

func New(oracle Oracle, bot Bot) *Loop {
	return &Loop{
		oracle: oracle,
		bot:    bot,
		store:  game.NewStore(),
		state:  Active,
		Logger: logrus.WithField("session", uuid.NewString()),
	}
}

func (loop *Loop) State() State {
	return loop.state
}

// Snapshot returns a copy of the session's current state.
func (loop *Loop) Snapshot() game.State {
	return loop.store.Snapshot()
}

// Run plays rounds with lines read from in until the user quits or the
// input ends, and then writes the final report to out. Only errors reading
// the input are returned; failed rounds are reported to the user.
func (loop *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, Banner)

	var err error
	for loop.state == Active {
		if ctx.Err() != nil {
			loop.terminate("context done")
			break
		}

		fmt.Fprint(out, Prompt)

		var line string
		line, err = reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			fmt.Fprintln(out)
			loop.terminate("end of input")
			break
		}

		line = strings.TrimSpace(line)
		switch {
		case strings.EqualFold(line, Quit):
			loop.terminate("user quit")
		case line == "":
			// nothing to judge
		case len(line) > MaxInput:
			loop.Logger.WithField("length", len(line)).Warn("Move too long to judge")
			fmt.Fprintf(out, "%s, please try again\n", TooLong)
		default:
			loop.show(out, loop.Round(ctx, line))
		}
	}

	fmt.Fprintln(out, "Game ended.")
	fmt.Fprintln(out, "Final Results:")
	Report(out, loop.store.Snapshot())

	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (loop *Loop) terminate(reason string) {
	loop.state = Terminated
	loop.Logger.WithField("reason", reason).Debug("Session terminated")
}

// Verdict is the outcome of a single round as seen by the user.
type Verdict struct {
	Response *game.Response
	Err      error
}

// Round plays one round with the user's input. A round which the oracle
// could not decide at all leaves the session untouched and is played again
// with the next input. A decided verdict which breaks the response schema
// still keeps its bomb flags and uses up the round, but is not scored.
func (loop *Loop) Round(ctx context.Context, input string) Verdict {
	if loop.state != Active {
		return Verdict{Err: errors.New("play: session terminated")}
	}

	snapshot := loop.store.Snapshot()
	bot := loop.bot.Move(snapshot.BotBombUsed)
	request := game.NewRequest(snapshot, bot, input)

	log := loop.Logger.WithField("round", request.RoundNumber)
	log.WithFields(logrus.Fields{
		"input":    input,
		"bot_move": bot,
	}).Debug("Judging round")

	response, err := loop.evaluate(ctx, request)

	var schemaErr *judge.SchemaError
	switch {
	case err == nil:
		loop.store.Merge(response.StateUpdate)
		loop.noteBotMove(bot)

		if !loop.store.Record(response.Result) {
			log.WithField("round_result", response.Result).Debug("Round not scored")
		}

		loop.store.AdvanceRound()
		log.WithField("round_result", response.Result).Debug("Round decided")
		return Verdict{Response: response}

	case errors.As(err, &schemaErr):
		loop.store.Merge(schemaErr.Update)
		loop.noteBotMove(bot)
		loop.store.MarkFailed()
		loop.store.AdvanceRound()

		log = log.WithError(err).WithField("field", schemaErr.Field)
		if schemaErr.Field == "round_result" {
			log.WithField("round_result", schemaErr.Problem).Warn("Oracle gave an unrecognized round result")
		} else {
			log.Warn("Oracle broke the response schema")
		}

	default:
		log.WithError(err).Warn("Round could not be decided")
	}

	return Verdict{Err: err}
}

func (loop *Loop) evaluate(ctx context.Context, request game.Request) (*game.Response, error) {
	if loop.Spinner != nil {
		loop.Spinner.Start()
		defer loop.Spinner.Stop()
	}

	return loop.oracle.Evaluate(ctx, request)
}

// noteBotMove uses up the bot's bomb if it was offered, whatever the
// oracle reported.
func (loop *Loop) noteBotMove(bot game.Move) {
	if bot == game.Bomb {
		loop.store.Merge(game.StateUpdate{BotBombUsed: true})
	}
}

func (loop *Loop) show(out io.Writer, verdict Verdict) {
	var schemaErr *judge.SchemaError
	switch {
	case verdict.Err == nil:
		text, err := json.MarshalIndent(verdict.Response, "", "  ")
		if err != nil {
			fmt.Fprintln(out, Unintelligible)
			return
		}
		fmt.Fprintln(out, string(text))

	case errors.Is(verdict.Err, judge.ErrUnavailable):
		fmt.Fprintf(out, "%s, please try again\n", Unreachable)

	case errors.As(verdict.Err, &schemaErr):
		fmt.Fprintf(out, "%s (%s: %s), the round is not scored\n",
			Unintelligible, schemaErr.Field, schemaErr.Problem)

	case errors.Is(verdict.Err, judge.ErrMalformed):
		fmt.Fprintf(out, "%s, please try again\n", Unintelligible)

	default:
		fmt.Fprintf(out, "error: %s\n", verdict.Err)
	}
}
