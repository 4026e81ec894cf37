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

// Winner represents the overall result of a session.
type Winner int

const (
	UserWon Winner = +1
	Tied    Winner = 0
	BotWon  Winner = -1
)

// String returns a string representation of the given Winner.
func (winner Winner) String() string {
	switch winner {
	case UserWon:
		return "User"
	case Tied:
		return "Draw"
	case BotWon:
		return "Bot"
	default:
		return "?"
	}
}
