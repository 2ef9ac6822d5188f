package catalog

import (
	"context"
	"math/big"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// leafPrice is an offer's own stored price.
func leafPrice(n *domain.ItemNode) *int64 {
	return n.Price
}

// categoryPrices evaluates every category of a loaded subtree bottom-up.
// A category's price is the floor of the mean of its direct children's
// prices; children without a price are not counted. Unexpanded categories
// take their price from known.
func categoryPrices(root *domain.ItemNode, known map[uuid.UUID]*int64) map[uuid.UUID]*int64 {
	var order []*domain.ItemNode
	walk(root, func(n *domain.ItemNode) {
		if n.IsCategory() {
			order = append(order, n)
		}
	})

	prices := make(map[uuid.UUID]*int64, len(order))
	// Reverse pre-order puts every child before its parent.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n != root {
			if p, ok := known[n.ID]; ok && len(n.Children) == 0 {
				prices[n.ID] = p
				continue
			}
		}

		var sum priceSum
		for _, child := range n.Children {
			p := leafPrice(child)
			if child.IsCategory() {
				p = prices[child.ID]
			}
			if p == nil {
				continue
			}
			sum.add(*p)
		}
		prices[n.ID] = sum.mean()
	}

	return prices
}

// priceSum accumulates child prices for a floor average. It stays on int64
// until an addition overflows and then continues in a big.Int; the mean of
// int64 values always fits back into an int64.
type priceSum struct {
	small int64
	big   *big.Int
	count int64
}

func (s *priceSum) add(p int64) {
	s.count++
	if s.big == nil {
		if sum, ok := addInt64(s.small, p); ok {
			s.small = sum
			return
		}
		s.big = big.NewInt(s.small)
	}
	s.big.Add(s.big, big.NewInt(p))
}

// mean returns nil when nothing was added.
func (s *priceSum) mean() *int64 {
	if s.count == 0 {
		return nil
	}
	var avg int64
	if s.big == nil {
		avg = floorDiv(s.small, s.count)
	} else {
		// Euclidean division floors for a positive divisor.
		avg = new(big.Int).Div(s.big, big.NewInt(s.count)).Int64()
	}
	return &avg
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

// categoryPrice returns the aggregated price of a loaded subtree's root.
func categoryPrice(root *domain.ItemNode, known map[uuid.UUID]*int64) *int64 {
	if !root.IsCategory() {
		return leafPrice(root)
	}
	return categoryPrices(root, known)[root.ID]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// computePrice loads cat's subtree and aggregates it. Results for every
// category in the subtree are added to memo when memo is non-nil.
func (s *Service) computePrice(ctx context.Context, cat domain.Item, memo map[uuid.UUID]*int64) (*int64, error) {
	tree, err := s.loadSubtree(ctx, cat, memo)
	if err != nil {
		return nil, err
	}

	prices := categoryPrices(tree, memo)
	if memo != nil {
		for id, p := range prices {
			memo[id] = p
		}
	}
	return prices[cat.ID], nil
}
