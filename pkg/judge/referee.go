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
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"laptudirm.com/x/rpsplus/pkg/game"
)

// synonyms is the intent mapping taxonomy of the Instructions, along with
// the plain plurals of each word.
var synonyms = map[string]game.Move{
	"rock": game.Rock, "rocks": game.Rock,
	"stone": game.Rock, "stones": game.Rock,
	"boulder": game.Rock, "boulders": game.Rock,

	"paper": game.Paper, "papers": game.Paper,
	"sheet": game.Paper, "sheets": game.Paper,
	"page": game.Paper, "pages": game.Paper,
	"scroll": game.Paper, "scrolls": game.Paper,

	"scissors": game.Scissors, "scissor": game.Scissors,
	"cutters": game.Scissors, "cutter": game.Scissors,
	"shears": game.Scissors, "shear": game.Scissors,
	"blade": game.Scissors, "blades": game.Scissors,

	"bomb": game.Bomb, "bombs": game.Bomb,
	"nuke": game.Bomb, "nukes": game.Bomb,
	"dynamite": game.Bomb,
	"explosion": game.Bomb, "explosions": game.Bomb,
}

// beats maps every basic move to the move it defeats.
var beats = map[game.Move]game.Move{
	game.Rock:     game.Scissors,
	game.Scissors: game.Paper,
	game.Paper:    game.Rock,
}

// Referee is an offline Model which follows the Instructions mechanically,
// using only the documented synonym taxonomy. It is deterministic, which
// makes it usable without network access and in tests.
type Referee struct{}

// Complete implements Model. The instructions are ignored since the
// referee already knows the rules.
func (Referee) Complete(ctx context.Context, _ string, input []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var request game.Request
	if err := json.Unmarshal(input, &request); err != nil {
		return "", fmt.Errorf("referee: decode request: %w", err)
	}

	response := Decide(request)
	output, err := json.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("referee: encode response: %w", err)
	}

	return string(output), nil
}

// Decide produces the verdict the judge is expected to give for a request.
func Decide(request game.Request) game.Response {
	move, word := Interpret(request.UserInput)

	response := game.Response{
		Round:    request.RoundNumber,
		UserMove: move,
		BotMove:  request.BotMove,
		StateUpdate: game.StateUpdate{
			UserBombUsed: request.UserBombUsed || move == game.Bomb,
			BotBombUsed:  request.BotBombUsed || request.BotMove == game.Bomb,
		},
	}

	switch {
	case move == game.Unclear:
		response.Status = game.UnclearStatus
		response.Result = game.TurnWasted
		response.Reason = fmt.Sprintf("Input %q does not clearly map to a single valid move. The turn is wasted.", request.UserInput)

	case move == game.Bomb && request.UserBombUsed:
		response.Status = game.Invalid
		response.Result = game.TurnWasted
		response.Reason = fmt.Sprintf("User attempted to use BOMB ('%s'), but 'user_bomb_used' is already TRUE. The turn is wasted.", word)

	default:
		response.Status = game.Valid
		response.Result = resolve(move, request.BotMove)
		response.Reason = fmt.Sprintf(
			"User phrase '%s' maps to valid move %s. %s against %s: %s.",
			word, strings.ToUpper(string(move)), move, request.BotMove, response.Result,
		)
	}

	return response
}

// Interpret maps free text to a move along with the word which decided it.
// Text naming no move, or more than one, is Unclear.
func Interpret(text string) (game.Move, string) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	found, word := game.Unclear, ""
	for _, candidate := range words {
		move, ok := synonyms[candidate]
		switch {
		case !ok:
			continue
		case found == game.Unclear:
			found, word = move, candidate
		case found != move:
			return game.Unclear, ""
		}
	}

	return found, word
}

func resolve(user, bot game.Move) game.Outcome {
	switch {
	case user == bot:
		return game.Draw
	case user == game.Bomb:
		return game.UserWins
	case bot == game.Bomb:
		return game.BotWins
	case beats[user] == bot:
		return game.UserWins
	default:
		return game.BotWins
	}
}
