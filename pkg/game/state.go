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

// State is the mutable state of a single game session. It is a plain value:
// every method returns an updated copy and never modifies the receiver.
type State struct {
	Round int // Number of the round being played, starting at 1.

	UserBombUsed bool
	BotBombUsed  bool

	UserWins int
	BotWins  int
	Draws    int

	Wasted int // Rounds which ended with TurnWasted.
	Failed int // Rounds whose verdict broke the response schema.
}

// NewState returns the state of a session before its first round.
func NewState() State {
	return State{Round: 1}
}

// Merge applies the bomb flags proposed by the judge. A flag can only ever
// be switched on, so a regressing or inconsistent update is harmless.
func (state State) Merge(update StateUpdate) State {
	state.UserBombUsed = state.UserBombUsed || update.UserBombUsed
	state.BotBombUsed = state.BotBombUsed || update.BotBombUsed
	return state
}

// Record tallies the given round result. Only the exact labels UserWins,
// BotWins and Draw touch the score; it reports whether one of them did.
func (state State) Record(result Outcome) (State, bool) {
	switch result {
	case UserWins:
		state.UserWins++
	case BotWins:
		state.BotWins++
	case Draw:
		state.Draws++
	case TurnWasted:
		state.Wasted++
		return state, false
	default:
		return state, false
	}

	return state, true
}

// Scored returns the number of rounds which produced a winner or a draw.
func (state State) Scored() int {
	return state.UserWins + state.BotWins + state.Draws
}

// Winner returns the overall winner of the session so far.
func (state State) Winner() Winner {
	switch {
	case state.UserWins > state.BotWins:
		return UserWon
	case state.BotWins > state.UserWins:
		return BotWon
	default:
		return Tied
	}
}

// Store holds the authoritative State of one session. It is owned by a
// single session loop and is not safe for concurrent use; sessions running
// in parallel each need their own Store.
type Store struct {
	state State
}

func NewStore() *Store {
	return &Store{state: NewState()}
}

// Snapshot returns a copy of the current state.
func (store *Store) Snapshot() State {
	return store.state
}

// AdvanceRound moves the session to the next round. It is called exactly
// once for every processed round, whatever its outcome.
func (store *Store) AdvanceRound() {
	store.state.Round++
}

func (store *Store) Merge(update StateUpdate) {
	store.state = store.state.Merge(update)
}

// Record tallies a round result, see State.Record.
func (store *Store) Record(result Outcome) bool {
	var scored bool
	store.state, scored = store.state.Record(result)
	return scored
}

// MarkFailed counts a round whose verdict could not be scored.
func (store *Store) MarkFailed() {
	store.state.Failed++
}
