package main

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // fetch the session as-is
	"s": 0, // solve the puzzle
}

func executeCommand(
	ctx context.Context, session *PuzzleSession, c string,
) (err error) {
	parts := strings.Split(strings.TrimSpace(c), " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return
	case "s":
		if session.Solution != nil {
			return
		}
		solution, solveMs, err := solveBoard(session.Board)
		if err != nil {
			return err
		}
		session.Solution = solution
		session.SolveMs = &solveMs
		session.SolvedAt = time.Now().UTC()
		return pg.UpdatePuzzleSession(ctx, session)
	}
	return errors.New("invalid command")
}
