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

// Package judge implements the judging oracle of rock-paper-scissors-plus:
// a natural-language model which interprets the user's move and decides a
// round, and the layer which keeps its untrusted answers in check.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rpsplus/pkg/game"
)

// Model is a natural-language backend able to follow the judge's
// Instructions. Each call is independent of every other call.
type Model interface {
	// Complete returns the model's raw answer to the JSON encoded input.
	Complete(ctx context.Context, instructions string, input []byte) (string, error)
}

// Config controls how a Judge talks to its Model.
type Config struct {
	// Timeout bounds every single attempt at reaching the model.
	Timeout time.Duration

	// Retries is the number of extra attempts made after a failed call.
	Retries int

	// Backoff is the pause between two attempts.
	Backoff time.Duration
}

var DefaultConfig = Config{
	Timeout: 30 * time.Second,
	Retries: 1,
	Backoff: 500 * time.Millisecond,
}

// Judge decides rounds using a Model.
type Judge struct {
	model  Model
	config Config

	Logger *logrus.Entry
}

func New(model Model, config Config) *Judge {
	return &Judge{
		model:  model,
		config: config,
		Logger: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Evaluate asks the model for a verdict on the given round. Errors match
// one of ErrUnavailable, ErrMalformed or ErrSchema.
func (judge *Judge) Evaluate(ctx context.Context, request game.Request) (*game.Response, error) {
	input, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("judge: encode request: %w", err)
	}

	log := judge.Logger.WithField("round", request.RoundNumber)

	raw, err := judge.complete(ctx, log, input)
	if err != nil {
		return nil, err
	}

	log.WithField("raw", raw).Trace("Received verdict from oracle")

	response, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	// The bot's move is chosen by the game, the oracle only echoes it.
	if response.BotMove != request.BotMove {
		return nil, &SchemaError{
			Field:   "bot_move",
			Problem: fmt.Sprintf("echoed %s, but the bot played %s", response.BotMove, request.BotMove),
			Update:  response.StateUpdate,
		}
	}

	if response.Round != request.RoundNumber {
		log.WithField("verdict-round", response.Round).Warn("Oracle answered for a different round")
	}

	return response, nil
}

// complete calls the model, retrying failed attempts. A cancelled parent
// context is never retried.
func (judge *Judge) complete(ctx context.Context, log *logrus.Entry, input []byte) (string, error) {
	for attempt := 0; ; attempt++ {
		raw, err := judge.attempt(ctx, input)
		if err == nil {
			return raw, nil
		}

		if ctx.Err() != nil || attempt >= judge.config.Retries {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		log.WithError(err).WithField("attempt", attempt+1).Warn("Oracle call failed, retrying")

		timer := time.NewTimer(judge.config.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
		case <-timer.C:
		}
	}
}

// ErrTimeout is the cause reported when an attempt runs out of time.
var ErrTimeout = errors.New("judge: oracle call timed out")

// attempt makes a single call to the model. The call is abandoned when the
// timeout runs out even if the model ignores its context.
func (judge *Judge) attempt(ctx context.Context, input []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if judge.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, judge.config.Timeout, ErrTimeout)
		defer cancel()
	}

	type answer struct {
		raw string
		err error
	}

	answers := make(chan answer, 1)
	go func() {
		raw, err := judge.model.Complete(ctx, Instructions, input)
		answers <- answer{raw, err}
	}()

	select {
	case <-ctx.Done():
		return "", context.Cause(ctx)
	case answer := <-answers:
		return answer.raw, answer.err
	}
}
