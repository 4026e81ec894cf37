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

package judge

import (
	"encoding/json"
	"fmt"
	"strings"

	"laptudirm.com/x/rpsplus/pkg/game"
)

// Parse turns the raw text returned by a model into a validated Response.
//
// The text is parsed as JSON directly, and if that fails, the substring from
// the first '{' to the last '}' is tried instead. This recovers an object
// wrapped in commentary or code fences, but not a truncated one. Failing
// both, ErrMalformed is returned. A parsed object with missing or out of
// domain fields results in a *SchemaError.
func Parse(raw string) (*game.Response, error) {
	fields, err := decode(raw)
	if err != nil {
		return nil, err
	}

	return validate(fields)
}

type object = map[string]json.RawMessage

func decode(raw string) (object, error) {
	var fields object
	if err := json.Unmarshal([]byte(raw), &fields); err == nil && fields != nil {
		return fields, nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no json object found", ErrMalformed)
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return fields, nil
}

func validate(fields object) (*game.Response, error) {
	var response game.Response

	// The state update is extracted before anything else so that it can
	// be salvaged from an otherwise invalid response.
	var state object
	stateProblem := lookup(fields, "state_update", &state)
	var userProblem, botProblem string
	if stateProblem == "" {
		userProblem = lookup(state, "user_bomb_used", &response.StateUpdate.UserBombUsed)
		botProblem = lookup(state, "bot_bomb_used", &response.StateUpdate.BotBombUsed)
	}

	fail := func(field, problem string) error {
		return &SchemaError{
			Field:   field,
			Problem: problem,
			Update:  response.StateUpdate,
		}
	}

	if problem := lookup(fields, "round", &response.Round); problem != "" {
		return nil, fail("round", problem)
	}

	var userMove, status, botMove, result string
	if problem := lookup(fields, "user_move_interpreted", &userMove); problem != "" {
		return nil, fail("user_move_interpreted", problem)
	}
	if problem := lookup(fields, "move_status", &status); problem != "" {
		return nil, fail("move_status", problem)
	}
	if problem := lookup(fields, "reason", &response.Reason); problem != "" {
		return nil, fail("reason", problem)
	}
	if problem := lookup(fields, "bot_move", &botMove); problem != "" {
		return nil, fail("bot_move", problem)
	}
	if problem := lookup(fields, "round_result", &result); problem != "" {
		return nil, fail("round_result", problem)
	}

	switch {
	case stateProblem != "":
		return nil, fail("state_update", stateProblem)
	case userProblem != "":
		return nil, fail("state_update.user_bomb_used", userProblem)
	case botProblem != "":
		return nil, fail("state_update.bot_bomb_used", botProblem)
	}

	var err error
	if response.UserMove, err = game.ParseMove(userMove); err != nil {
		return nil, fail("user_move_interpreted", err.Error())
	}
	if response.Status, err = game.ParseMoveStatus(status); err != nil {
		return nil, fail("move_status", err.Error())
	}
	if response.BotMove, err = game.ParseMove(botMove); err != nil || !response.BotMove.IsReal() {
		return nil, fail("bot_move", fmt.Sprintf("%q is not a playable move", botMove))
	}

	response.Result = game.Outcome(result)
	if !response.Result.Known() {
		return nil, fail("round_result", fmt.Sprintf("unrecognized outcome %q", result))
	}

	if problem := consistency(&response); problem != "" {
		return nil, fail("move_status", problem)
	}

	return &response, nil
}

// consistency checks that the claims made in a response agree with each
// other. It does not decide who won a round.
func consistency(response *game.Response) string {
	switch {
	case (response.UserMove == game.Unclear) != (response.Status == game.UnclearStatus):
		return fmt.Sprintf("status %s does not match move %s", response.Status, response.UserMove)
	case response.Status == game.Invalid && response.UserMove != game.Bomb:
		return fmt.Sprintf("move %s can not be invalid", response.UserMove)
	case response.Status != game.Valid && response.Result != game.TurnWasted:
		return fmt.Sprintf("%s move must waste the turn, not %q", response.Status, response.Result)
	case response.Status == game.Valid && response.Result == game.TurnWasted:
		return "valid move can not waste the turn"
	}

	return ""
}

// lookup decodes the named field into value. It returns an empty string on
// success or a description of what is wrong with the field.
func lookup[T any](fields object, name string, value *T) string {
	raw, found := fields[name]
	switch {
	case !found:
		return "missing"
	case string(raw) == "null":
		return "null value"
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Sprintf("wrong type %s", raw)
	}

	return ""
}
