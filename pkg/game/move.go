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

import "fmt"

// Move is a move token of rock-paper-scissors-plus.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
	Bomb     Move = "bomb"

	// Unclear marks input which could not be mapped to a move. It is
	// never played, only reported by the judge.
	Unclear Move = "unclear"
)

// ParseMove converts an exact move token into a Move.
func ParseMove(token string) (Move, error) {
	switch move := Move(token); move {
	case Rock, Paper, Scissors, Bomb, Unclear:
		return move, nil
	default:
		return "", fmt.Errorf("parse move: unknown token %q", token)
	}
}

// IsReal reports whether the move can actually be played.
func (move Move) IsReal() bool {
	switch move {
	case Rock, Paper, Scissors, Bomb:
		return true
	default:
		return false
	}
}

// MoveStatus describes whether the user's move was accepted in a round.
type MoveStatus string

const (
	Valid         MoveStatus = "VALID"
	Invalid       MoveStatus = "INVALID"
	UnclearStatus MoveStatus = "UNCLEAR"
)

// ParseMoveStatus converts an exact status token into a MoveStatus.
func ParseMoveStatus(token string) (MoveStatus, error) {
	switch status := MoveStatus(token); status {
	case Valid, Invalid, UnclearStatus:
		return status, nil
	default:
		return "", fmt.Errorf("parse move status: unknown token %q", token)
	}
}

// Outcome is the label the judge gives to a round.
type Outcome string

// The canonical outcomes. Any other string is unrecognized.
const (
	UserWins   Outcome = "User wins"
	BotWins    Outcome = "Bot wins"
	Draw       Outcome = "Draw"
	TurnWasted Outcome = "Turn wasted"
)

// Known reports whether the outcome is one of the four canonical labels.
func (outcome Outcome) Known() bool {
	switch outcome {
	case UserWins, BotWins, Draw, TurnWasted:
		return true
	default:
		return false
	}
}
