package npuzzle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBoardRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		width int
		tiles []int
	}{
		{"too narrow", 1, []int{0}},
		{"wrong tile count", 3, []int{1, 2, 3, 4, 5, 6, 7, 0}},
		{"value out of range", 2, []int{1, 2, 3, 9}},
		{"negative value", 2, []int{1, 2, 3, -1}},
		{"duplicate value", 2, []int{1, 2, 2, 0}},
		{"no blank", 2, []int{1, 2, 3, 3}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.width, test.tiles)
			if !errors.Is(err, ErrMalformedBoard) {
				t.Fatalf("have %v, want ErrMalformedBoard", err)
			}
		})
	}
}

func TestNewBoardCopiesTiles(t *testing.T) {
	tiles := []int{1, 2, 3, 0}
	b, err := NewBoard(2, tiles)
	if err != nil {
		t.Fatal(err)
	}
	tiles[0] = 99
	assert.Equal(t, []int{1, 2, 3, 0}, b.Tiles)
}

func TestNewBoardFromRowsRejectsNonSquare(t *testing.T) {
	_, err := NewBoardFromRows([][]int{{1, 2, 3}, {4, 0, 6}})
	if !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("have %v, want ErrMalformedBoard", err)
	}
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("1 2 3\n4 0 6\n7 5 8\n")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, []int{1, 2, 3, 4, 0, 6, 7, 5, 8}, b.Tiles)

	if _, err := ParseBoard("1 2\n3 x"); !errors.Is(err, ErrMalformedBoard) {
		t.Fatalf("have %v, want ErrMalformedBoard", err)
	}
}

func TestGoalKey(t *testing.T) {
	assert.Equal(t, "1 2 3 0", Goal(2).Key())
	assert.Equal(t, "1 2 3 4 5 6 7 8 0", Goal(3).Key())
	assert.Equal(t, "1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 0", Goal(4).Key())
}

func TestKeyIgnoresSearchMetadata(t *testing.T) {
	a, _ := NewBoard(2, []int{1, 2, 3, 0})
	b := Goal(2)
	assert.Equal(t, a.Key(), b.Key())
}

func TestSolved(t *testing.T) {
	assert.True(t, Goal(3).Solved())
	shuffled, _ := NewBoard(3, []int{1, 2, 3, 4, 0, 6, 7, 5, 8})
	assert.False(t, shuffled.Solved())
	assert.Zero(t, Manhattan(Goal(4)))
}

func TestSuccessorsOrderAndLabels(t *testing.T) {
	// Blank in the middle: all four successors, fixed emission order.
	b, _ := NewBoard(3, []int{1, 2, 3, 4, 0, 6, 7, 5, 8})
	succs := b.Successors()
	if len(succs) != 4 {
		t.Fatalf("have %d successors, want 4", len(succs))
	}
	wantMoves := []Move{MoveDown, MoveUp, MoveRight, MoveLeft}
	wantTiles := [][]int{
		{1, 0, 3, 4, 2, 6, 7, 5, 8}, // swapped with tile above
		{1, 2, 3, 4, 5, 6, 7, 0, 8}, // swapped with tile below
		{1, 2, 3, 0, 4, 6, 7, 5, 8}, // swapped with tile to the left
		{1, 2, 3, 4, 6, 0, 7, 5, 8}, // swapped with tile to the right
	}
	for i, succ := range succs {
		assert.Equal(t, wantMoves[i], succ.Move)
		assert.Equal(t, wantTiles[i], succ.Board.Tiles)
	}
}

func TestSuccessorsCorner(t *testing.T) {
	// Blank in the top-left corner: only below and right remain.
	b, _ := NewBoard(2, []int{0, 1, 3, 2})
	succs := b.Successors()
	if len(succs) != 2 {
		t.Fatalf("have %d successors, want 2", len(succs))
	}
	assert.Equal(t, MoveUp, succs[0].Move)
	assert.Equal(t, MoveLeft, succs[1].Move)
}

func TestSuccessorsDoNotMutateReceiver(t *testing.T) {
	b := Goal(3)
	before := b.Key()
	b.Successors()
	assert.Equal(t, before, b.Key())
}

func TestShuffleZeroSteps(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b := Goal(3).Shuffle(0, r)
	assert.True(t, b.Solved())
}

func TestShuffleIsReproducible(t *testing.T) {
	a := Goal(4).Shuffle(50, rand.New(rand.NewPCG(1, 2)))
	b := Goal(4).Shuffle(50, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a.Key(), b.Key())
}

func TestShuffleKeepsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	b := Goal(3).Shuffle(200, r)
	if _, err := NewBoard(b.Width, b.Tiles); err != nil {
		t.Fatalf("shuffled board is malformed: %v", err)
	}
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "Up", MoveUp.String())
	assert.Equal(t, "Down", MoveDown.String())
	assert.Equal(t, "Left", MoveLeft.String())
	assert.Equal(t, "Right", MoveRight.String())
	assert.Equal(t, "", MoveNone.String())
}
