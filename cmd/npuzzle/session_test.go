package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/npuzzle-server/internal/npuzzle"
)

func TestPuzzleSessionMarshalUnsolved(t *testing.T) {
	board, err := npuzzle.NewBoardFromRows([][]int{{1, 2, 3}, {4, 0, 6}, {7, 5, 8}})
	require.NoError(t, err)

	session := PuzzleSession{
		SessionId:    42,
		Board:        board,
		ShuffleSteps: 1,
		StartedAt:    time.UnixMilli(1700000000000),
	}

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	var got PuzzleSessionJSON
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, "42", got.SessionId)
	assert.Equal(t, 3, got.Width)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 0, 6}, {7, 5, 8}}, got.Board)
	assert.False(t, got.Solved)
	assert.Nil(t, got.PathLength)
	assert.Empty(t, got.Moves)
	assert.Nil(t, got.SolvedAt)
	assert.Equal(t, int64(1700000000000), got.StartedAt)
}

func TestPuzzleSessionMarshalSolved(t *testing.T) {
	board, err := npuzzle.NewBoardFromRows([][]int{{1, 2, 3}, {4, 0, 6}, {7, 5, 8}})
	require.NoError(t, err)
	solution, err := npuzzle.Solve(board)
	require.NoError(t, err)

	solveMs := 0.5
	session := PuzzleSession{
		SessionId:    42,
		Board:        board,
		ShuffleSteps: 1,
		Solution:     solution,
		SolveMs:      &solveMs,
		StartedAt:    time.UnixMilli(1700000000000),
		SolvedAt:     time.UnixMilli(1700000001000),
	}

	payload, err := json.Marshal(session)
	require.NoError(t, err)

	var got PuzzleSessionJSON
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.True(t, got.Solved)
	require.NotNil(t, got.PathLength)
	assert.Equal(t, 1, *got.PathLength)
	assert.Equal(t, []string{"Up"}, got.Moves)
	require.NotNil(t, got.SolvedAt)
	assert.Equal(t, int64(1700000001000), *got.SolvedAt)
}
