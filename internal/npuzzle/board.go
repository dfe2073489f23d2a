package npuzzle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

var ErrMalformedBoard = errors.New("malformed board")

// Board is a single sliding-tile configuration. Tiles are stored flat in
// row-major order; 0 is the blank. A Board carries no search metadata, so two
// boards with the same layout are interchangeable.
type Board struct {
	Width int
	Tiles []int
}

// NewBoard validates tiles as a permutation of 0..width²-1 and returns a
// board backed by a copy of the slice.
func NewBoard(width int, tiles []int) (Board, error) {
	if width < 2 {
		return Board{}, fmt.Errorf("%w: width must be at least 2, got %d",
			ErrMalformedBoard, width)
	}
	n := width * width
	if len(tiles) != n {
		return Board{}, fmt.Errorf("%w: want %d tiles, got %d",
			ErrMalformedBoard, n, len(tiles))
	}
	seen := make([]bool, n)
	for _, v := range tiles {
		if v < 0 || v >= n {
			return Board{}, fmt.Errorf("%w: tile value %d out of range",
				ErrMalformedBoard, v)
		}
		if seen[v] {
			return Board{}, fmt.Errorf("%w: duplicate tile value %d",
				ErrMalformedBoard, v)
		}
		seen[v] = true
	}
	b := Board{Width: width, Tiles: make([]int, n)}
	copy(b.Tiles, tiles)
	return b, nil
}

// NewBoardFromRows accepts the row-per-slice layout used by clients,
// e.g. [[1,2,3],[4,0,6],[7,5,8]].
func NewBoardFromRows(rows [][]int) (Board, error) {
	width := len(rows)
	tiles := make([]int, 0, width*width)
	for _, row := range rows {
		if len(row) != width {
			return Board{}, fmt.Errorf("%w: board is not square",
				ErrMalformedBoard)
		}
		tiles = append(tiles, row...)
	}
	return NewBoard(width, tiles)
}

// ParseBoard reads a board from text, one row per line, tiles separated by
// whitespace:
//
//	1 2 3
//	4 0 6
//	7 5 8
func ParseBoard(s string) (Board, error) {
	var rows [][]int
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Board{}, fmt.Errorf("%w: bad tile %q",
					ErrMalformedBoard, f)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return Board{}, fmt.Errorf("%w: empty input", ErrMalformedBoard)
	}
	return NewBoardFromRows(rows)
}

// Goal returns the solved layout 1,2,...,width²-1,0.
func Goal(width int) Board {
	n := width * width
	tiles := make([]int, n)
	for i := range n - 1 {
		tiles[i] = i + 1
	}
	return Board{Width: width, Tiles: tiles}
}

// Key is the canonical key of the layout: the flattened tile sequence joined
// by spaces. It is used for visited-set membership, goal comparison and cache
// lookups, and depends on nothing but Width and Tiles.
func (b Board) Key() string {
	var sb strings.Builder
	for i, v := range b.Tiles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Rows returns the tiles as one slice per row, the layout clients exchange.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.Width)
	for i := range rows {
		rows[i] = make([]int, b.Width)
		copy(rows[i], b.Tiles[i*b.Width:(i+1)*b.Width])
	}
	return rows
}

// Solved reports whether the board is in the goal layout.
func (b Board) Solved() bool {
	for i, v := range b.Tiles {
		if i == len(b.Tiles)-1 {
			return v == 0
		}
		if v != i+1 {
			return false
		}
	}
	return false
}

func (b Board) String() string {
	var sb strings.Builder
	for i, v := range b.Tiles {
		if i > 0 {
			if i%b.Width == 0 {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		if v == 0 {
			sb.WriteByte('_')
		} else {
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

func (b Board) blank() int {
	for i, v := range b.Tiles {
		if v == 0 {
			return i
		}
	}
	// NewBoard guarantees exactly one blank.
	panic("npuzzle: board has no blank")
}

// swapped returns a copy of the board with tiles i and j exchanged.
func (b Board) swapped(i, j int) Board {
	tiles := make([]int, len(b.Tiles))
	copy(tiles, b.Tiles)
	tiles[i], tiles[j] = tiles[j], tiles[i]
	return Board{Width: b.Width, Tiles: tiles}
}

// Successor is a board reachable by one blank move, labeled with that move.
type Successor struct {
	Board Board
	Move  Move
}

// Successors lists the boards reachable by a single blank move, always in the
// order above, below, left, right (skipping out-of-bounds neighbors). The
// receiver is not modified.
func (b Board) Successors() []Successor {
	var (
		blank = b.blank()
		i, j  = blank / b.Width, blank % b.Width
		out   = make([]Successor, 0, 4)
	)
	if i-1 >= 0 {
		out = append(out, Successor{b.swapped(blank, blank-b.Width), MoveDown})
	}
	if i+1 < b.Width {
		out = append(out, Successor{b.swapped(blank, blank+b.Width), MoveUp})
	}
	if j-1 >= 0 {
		out = append(out, Successor{b.swapped(blank, blank-1), MoveRight})
	}
	if j+1 < b.Width {
		out = append(out, Successor{b.swapped(blank, blank+1), MoveLeft})
	}
	return out
}

// Shuffle walks steps random single-tile moves from b and returns the board it
// lands on. The caller supplies the random source so that puzzle generation is
// reproducible.
func (b Board) Shuffle(steps int, r *rand.Rand) Board {
	cur := b
	for range steps {
		next := cur.Successors()
		cur = next[r.IntN(len(next))].Board
	}
	return cur
}
