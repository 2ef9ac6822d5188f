package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// GetItem returns the item with its whole subtree. Categories carry a
// (possibly empty) children slice, offers carry nil.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.ItemNode, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	node, err := s.loadSubtree(ctx, *item, nil)
	if err != nil {
		return nil, fmt.Errorf("load subtree: %w", err)
	}
	return node, nil
}

// loadSubtree materializes root and its descendants breadth first, one
// query per tree level. Categories present in known are left unexpanded.
func (s *Service) loadSubtree(ctx context.Context, root domain.Item, known map[uuid.UUID]*int64) (*domain.ItemNode, error) {
	rootNode := newNode(root)
	if !root.IsCategory() {
		return rootNode, nil
	}

	nodes := map[uuid.UUID]*domain.ItemNode{root.ID: rootNode}
	frontier := []uuid.UUID{root.ID}

	for len(frontier) > 0 {
		children, err := s.items.ListByParentIDs(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("list children: %w", err)
		}

		var next []uuid.UUID
		for _, child := range children {
			if _, seen := nodes[child.ID]; seen {
				return nil, fmt.Errorf("item %s under %s: %w", child.ID, root.ID, domain.ErrCycle)
			}
			if child.ParentID == nil {
				continue
			}
			parent, ok := nodes[*child.ParentID]
			if !ok {
				continue
			}

			node := newNode(child)
			parent.Children = append(parent.Children, node)
			nodes[child.ID] = node

			if !child.IsCategory() {
				continue
			}
			if _, skip := known[child.ID]; skip {
				continue
			}
			next = append(next, child.ID)
		}
		frontier = next
	}

	return rootNode, nil
}

func newNode(item domain.Item) *domain.ItemNode {
	node := &domain.ItemNode{Item: item}
	if item.IsCategory() {
		node.Children = []*domain.ItemNode{}
	}
	return node
}

// walk visits every node of the tree in pre-order without recursion.
func walk(root *domain.ItemNode, visit func(n *domain.ItemNode)) {
	stack := []*domain.ItemNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
