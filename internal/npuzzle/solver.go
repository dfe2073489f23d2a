package npuzzle

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrUnsolvable = errors.New("no solution found")

// node is one entry of the solver's arena. parent is an index into the same
// arena (-1 for the root); depth strictly increases along parent chains, so
// the links can never form a cycle, and dropping the arena releases the whole
// search tree at once.
type node struct {
	board  Board
	move   Move
	parent int
	depth  int
	heur   int
}

// Step is one element of a solution path.
type Step struct {
	Board Board
	Move  Move // MoveNone for the initial board
	Depth int
}

// Solution is the optimal path from the initial board to the goal, root
// first. Expanded counts the boards popped and expanded during the search.
type Solution struct {
	Steps    []Step
	Expanded int
}

// Moves lists the move labels of the path, skipping the initial board.
func (s Solution) Moves() []Move {
	moves := make([]Move, 0, len(s.Steps)-1)
	for _, step := range s.Steps[1:] {
		moves = append(moves, step.Move)
	}
	return moves
}

// Solve runs A* from start and returns the shortest path to the solved
// layout. A board whose layout is in the wrong parity class exhausts its
// reachable half of the permutation space and gets ErrUnsolvable; with the
// Manhattan heuristic every popped path is already optimal, so the first time
// the goal surfaces the search is done.
func Solve(start Board) (*Solution, error) {
	if _, err := NewBoard(start.Width, start.Tiles); err != nil {
		return nil, err
	}

	var (
		arena   = []node{{board: start, parent: -1, heur: Manhattan(start)}}
		open    frontier
		visited = map[string]struct{}{start.Key(): {}}
	)
	open.push(0, arena[0].heur)

	expanded := 0
	for !open.empty() {
		item, err := open.popMin()
		if err != nil {
			// unreachable, the loop condition guards the pop
			return nil, err
		}
		cur := arena[item.node]

		if cur.board.Solved() {
			Log.WithFields(logrus.Fields{
				"depth":    cur.depth,
				"expanded": expanded,
				"arena":    len(arena),
			}).Debug("solved")
			return &Solution{
				Steps:    reconstruct(arena, item.node),
				Expanded: expanded,
			}, nil
		}

		expanded++
		for _, succ := range cur.board.Successors() {
			key := succ.Board.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			arena = append(arena, node{
				board:  succ.Board,
				move:   succ.Move,
				parent: item.node,
				depth:  cur.depth + 1,
				heur:   Manhattan(succ.Board),
			})
			child := len(arena) - 1
			open.push(child, arena[child].depth+arena[child].heur)
		}
	}

	Log.WithFields(logrus.Fields{
		"expanded": expanded,
		"arena":    len(arena),
	}).Debug("frontier exhausted")
	return nil, ErrUnsolvable
}

// reconstruct walks parent handles from the goal node back to the root and
// reverses the collected steps. The result has goal depth + 1 entries.
func reconstruct(arena []node, goal int) []Step {
	steps := make([]Step, 0, arena[goal].depth+1)
	for i := goal; i != -1; i = arena[i].parent {
		n := arena[i]
		steps = append(steps, Step{Board: n.board, Move: n.move, Depth: n.depth})
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
