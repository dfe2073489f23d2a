package main

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/vancomm/npuzzle-server/internal/npuzzle"
)

type PuzzleSession struct {
	SessionId    int
	PlayerId     *int
	Board        npuzzle.Board
	ShuffleSteps int
	Solution     *npuzzle.Solution
	SolveMs      *float64
	StartedAt    time.Time
	SolvedAt     time.Time
}

type PuzzleSessionJSON struct {
	SessionId    string   `json:"session_id"`
	Board        [][]int  `json:"board"`
	Width        int      `json:"width"`
	ShuffleSteps int      `json:"shuffle_steps"`
	Solved       bool     `json:"solved"`
	PathLength   *int     `json:"path_length,omitempty"`
	Moves        []string `json:"moves,omitempty"`
	Expanded     *int     `json:"expanded,omitempty"`
	SolveMs      *float64 `json:"solve_ms,omitempty"`
	StartedAt    int64    `json:"started_at"`
	SolvedAt     *int64   `json:"solved_at,omitempty"`
}

func (s PuzzleSession) MarshalJSON() ([]byte, error) {
	var (
		solvedAt   *int64
		pathLength *int
		moves      []string
		expanded   *int
	)
	if !s.SolvedAt.IsZero() {
		e := s.SolvedAt.UnixMilli()
		solvedAt = &e
	}
	if s.Solution != nil {
		n := len(s.Solution.Steps) - 1
		pathLength = &n
		moves = moveNames(s.Solution.Moves())
		expanded = &s.Solution.Expanded
	}
	return json.Marshal(PuzzleSessionJSON{
		SessionId:    strconv.Itoa(s.SessionId),
		Board:        s.Board.Rows(),
		Width:        s.Board.Width,
		ShuffleSteps: s.ShuffleSteps,
		Solved:       s.Solution != nil,
		PathLength:   pathLength,
		Moves:        moves,
		Expanded:     expanded,
		SolveMs:      s.SolveMs,
		StartedAt:    s.StartedAt.UnixMilli(),
		SolvedAt:     solvedAt,
	})
}

func moveNames(moves []npuzzle.Move) []string {
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	return names
}
