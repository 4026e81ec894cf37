// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

// Package stats estimates how strongly one player performed against another
// from the win, draw and loss counts of a session.
package stats

import "math"

// Elo returns the likely elo difference of the target player along with its
// p < 0.05 upper bound and lower bound, called mu, muMax, and muMin
// respectively. Counts are smoothed so that an empty or one-sided session
// still produces a finite estimate.
func Elo(ws, ds, ls int) (muMin float64, mu float64, muMax float64) {
	N := float64(ws+ds+ls) + 1.5 // total number of rounds

	w := (float64(ws) + 0.5) / N // measured win probability
	d := (float64(ds) + 0.5) / N // measured draw probability
	l := (float64(ls) + 0.5) / N // measured loss probability

	// empirical mean of random variable
	mu = w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(
		w*math.Pow(1-mu, 2)+
			d*math.Pow(0.5-mu, 2)+
			l*math.Pow(0-mu, 2),
	) / math.Sqrt(N)

	muMax = mu + phiInv(0.975)*sigma // upper bound
	muMin = mu + phiInv(0.025)*sigma // lower bound

	return scoreToElo(muMin), scoreToElo(mu), scoreToElo(muMax)
}

// Error returns the half width of the confidence interval around mu.
func Error(muMin, mu, muMax float64) float64 {
	return math.Abs(math.Max(muMax-mu, mu-muMin))
}

// scoreToElo converts an expected score into an elo difference. Scores
// outside (0, 1) have no finite elo and are reported as 0.
func scoreToElo(x float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}

	elo := -400 * math.Log10(1/x-1)

	// rounding noise of an even score
	if math.Abs(elo) < epsilon {
		return 0
	}

	return elo
}

// epsilon is the smallest elo difference told apart from zero.
const epsilon = 1e-6

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
