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

package play

import (
	"fmt"
	"io"

	"laptudirm.com/x/rpsplus/pkg/game"
	"laptudirm.com/x/rpsplus/pkg/stats"
)

// Report writes the final tally of a session to out, ending with the
// overall verdict.
func Report(out io.Writer, state game.State) {
	lower, elo, upper := stats.Elo(state.UserWins, state.Draws, state.BotWins)

	rounds := fmt.Sprintf("║ ROUNDS | N: %d W: %d L: %d D: %d", state.Scored(), state.UserWins, state.BotWins, state.Draws)
	others := fmt.Sprintf("║ OTHER  | Wasted: %d Failed: %d", state.Wasted, state.Failed)
	bombs := fmt.Sprintf("║ BOMBS  | User: %s Bot: %s", used(state.UserBombUsed), used(state.BotBombUsed))
	rating := fmt.Sprintf("║ ELO    | %+.2f +- %.2f (95%%)", elo, stats.Error(lower, elo, upper))

	fmt.Fprintln(out, "╔═════════════════════════════════════════════════╗")
	fmt.Fprintf(out, "%-50s║\n", rounds)
	fmt.Fprintf(out, "%-50s║\n", others)
	fmt.Fprintf(out, "%-50s║\n", bombs)
	fmt.Fprintf(out, "%-50s║\n", rating)
	fmt.Fprintln(out, "╚═════════════════════════════════════════════════╝")

	fmt.Fprintln(out, Overall(state.Winner()))
}

// Overall returns the closing line announcing the winner of a session.
func Overall(winner game.Winner) string {
	if winner == game.Tied {
		return "Overall Result: Draw"
	}

	return "Overall Winner: " + winner.String()
}

func used(flag bool) string {
	if flag {
		return "used"
	}

	return "unused"
}
