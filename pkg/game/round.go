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

package game

// Request is the input handed to the judge for a single round.
type Request struct {
	RoundNumber  int    `json:"round_number"`
	UserInput    string `json:"user_input"`
	BotMove      Move   `json:"bot_move"`
	UserBombUsed bool   `json:"user_bomb_used"`
	BotBombUsed  bool   `json:"bot_bomb_used"`
}

// NewRequest builds the request for the round described by the snapshot.
// The user's text is passed on verbatim.
func NewRequest(snapshot State, bot Move, input string) Request {
	return Request{
		RoundNumber:  snapshot.Round,
		UserInput:    input,
		BotMove:      bot,
		UserBombUsed: snapshot.UserBombUsed,
		BotBombUsed:  snapshot.BotBombUsed,
	}
}

// Response is the judge's verdict for a single round.
type Response struct {
	Round       int         `json:"round"`
	UserMove    Move        `json:"user_move_interpreted"`
	Status      MoveStatus  `json:"move_status"`
	Reason      string      `json:"reason"`
	BotMove     Move        `json:"bot_move"`
	Result      Outcome     `json:"round_result"`
	StateUpdate StateUpdate `json:"state_update"`
}

// StateUpdate holds the bomb flags proposed by the judge. They are not
// authoritative until merged into a State.
type StateUpdate struct {
	UserBombUsed bool `json:"user_bomb_used"`
	BotBombUsed  bool `json:"bot_bomb_used"`
}
