// internal/deck/deck.go
package deck

import (
	"errors"
	"math/rand"
	"time"

	"github.com/pyramid-live/pyramid/internal/models"
)

// ErrInsufficientCards indicates a deal asked for more cards than remain.
var ErrInsufficientCards = errors.New("deck: not enough cards remaining")

// Deck is an ordered sequence of undealt cards.
type Deck []models.Card

// New returns all 52 distinct cards in a freshly shuffled order.
func New() Deck {
	d := make(Deck, 52)
	for i := range d {
		d[i] = models.NewCard(i)
	}
	return Shuffle(d)
}

// Shuffle returns a uniformly shuffled copy of d. The input is not modified;
// no cards are introduced or lost.
func Shuffle(d Deck) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Deal removes the first n cards and returns them alongside the reduced deck.
func Deal(d Deck, n int) ([]models.Card, Deck, error) {
	if n < 0 || n > len(d) {
		return nil, d, ErrInsufficientCards
	}
	hand := make([]models.Card, n)
	copy(hand, d[:n])
	rest := make(Deck, len(d)-n)
	copy(rest, d[n:])
	return hand, rest, nil
}
