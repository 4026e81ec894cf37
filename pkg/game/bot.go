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

import (
	"math/rand"
	"time"
)

var (
	basicMoves = []Move{Rock, Paper, Scissors}
	allMoves   = []Move{Rock, Paper, Scissors, Bomb}
)

// SelectBotMove draws a move uniformly from the moves still legal for the
// bot: bomb is only a candidate while the bot has not used it.
func SelectBotMove(rng *rand.Rand, botBombUsed bool) Move {
	moves := allMoves
	if botBombUsed {
		moves = basicMoves
	}

	return moves[rng.Intn(len(moves))]
}

// Bot is the randomized opponent of the user.
type Bot struct {
	rng *rand.Rand
}

// NewBot creates a bot. A zero seed picks one from the clock.
func NewBot(seed int64) *Bot {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Bot{rng: rand.New(rand.NewSource(seed))}
}

func (bot *Bot) Move(botBombUsed bool) Move {
	return SelectBotMove(bot.rng, botBombUsed)
}
