package games

import "wager_engine/internal/rng"

// Card represents a playing card with rank and suit.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns a human-readable card like "♠A".
func (c Card) String() string {
	return c.Suit + c.Rank
}

var cardSuits = []string{"♠", "♥", "♦", "♣"}

var cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const deckSize = 52

// newDeck returns an ordered 52-card deck.
func newDeck() []Card {
	deck := make([]Card, 0, deckSize)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// shuffledDeck - Fisher–Yates over a fresh deck
func shuffledDeck(src rng.Source) ([]Card, error) {
	deck := newDeck()
	for i := len(deck) - 1; i > 0; i-- {
		j, err := src.IntN(i + 1)
		if err != nil {
			return nil, err
		}
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck, nil
}

// blackjackCardValue returns the blackjack point value of a card.
// 2-10: face value, J/Q/K: 10, A: 11 (soft)
func blackjackCardValue(rank string) int {
	switch rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	default:
		return 0
	}
}

// HandValue calculates the best blackjack hand value (accounting for soft aces).
func HandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += blackjackCardValue(c.Rank)
		if c.Rank == "A" {
			aces++
		}
	}
	// Reduce aces from 11 to 1 one at a time while over 21
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

func IsBlackjack(cards []Card) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

func IsBust(cards []Card) bool {
	return HandValue(cards) > 21
}
