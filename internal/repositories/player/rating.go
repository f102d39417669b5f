package player

import (
	"github.com/KirkDiggler/backgammon/internal/models"
	"github.com/jlouis/glicko2"
)

const (
	// Starting values for an unrated player
	defaultRating          = 1500.0
	defaultRatingDeviation = 350.0
	defaultVolatility      = 0.06

	// tau constrains how quickly volatility changes
	tau = 0.6
)

// ratingPlayer is an opponent as seen by glicko2.Rank
type ratingPlayer struct {
	r       float64
	rd      float64
	sigma   float64
	outcome float64
}

func (p ratingPlayer) R() float64 {
	return p.r
}

func (p ratingPlayer) RD() float64 {
	return p.rd
}

func (p ratingPlayer) Sigma() float64 {
	return p.sigma
}

func (p ratingPlayer) SJ() float64 {
	return p.outcome
}

func newRecord(name string) *models.PlayerRecord {
	return &models.PlayerRecord{
		Name:            name,
		Rating:          defaultRating,
		RatingDeviation: defaultRatingDeviation,
		Volatility:      defaultVolatility,
	}
}

// rate updates both ratings for a single game. Both updates are computed
// from the ratings before the game.
func rate(winner, loser *models.PlayerRecord) {
	wr, wrd, ws := glicko2.Rank(winner.Rating, winner.RatingDeviation, winner.Volatility,
		[]glicko2.Opponent{ratingPlayer{loser.Rating, loser.RatingDeviation, loser.Volatility, 1}}, tau)
	lr, lrd, ls := glicko2.Rank(loser.Rating, loser.RatingDeviation, loser.Volatility,
		[]glicko2.Opponent{ratingPlayer{winner.Rating, winner.RatingDeviation, winner.Volatility, 0}}, tau)

	winner.Rating, winner.RatingDeviation, winner.Volatility = wr, wrd, ws
	loser.Rating, loser.RatingDeviation, loser.Volatility = lr, lrd, ls
}
