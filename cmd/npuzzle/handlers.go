package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/npuzzle-server/internal/npuzzle"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewPuzzleParams struct {
	Width   int `schema:"width,required"`
	Shuffle int `schema:"shuffle,required"`
}

func (p NewPuzzleParams) Validate() bool {
	return p.Width >= 2 && p.Width <= config.Solver.MaxWidth &&
		p.Shuffle >= 0 && p.Shuffle <= config.Solver.MaxShuffle
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"ok\""))
}

func sendJSON(w http.ResponseWriter, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(payload)
	return err
}

func playerIdFromContext(r *http.Request) *int {
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		return &claims.PlayerId
	}
	return nil
}

func handleNewPuzzle(w http.ResponseWriter, r *http.Request) {
	var params NewPuzzleParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if !params.Validate() {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	board := npuzzle.Goal(params.Width).Shuffle(params.Shuffle, rnd)
	session, err := pg.CreatePuzzleSession(
		r.Context(), playerIdFromContext(r), board, params.Shuffle,
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// solveBoard consults the sqlite cache before running the solver and caches
// fresh results. On a cache hit the reported solve time is the lookup time.
func solveBoard(board npuzzle.Board) (*npuzzle.Solution, float64, error) {
	var (
		key      = board.Key()
		solution = &npuzzle.Solution{}
		start    = time.Now()
	)
	err := cache.Get(key, solution)
	if err == nil {
		log.Debug("solution cache hit for ", key)
		return solution, msSince(start), nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Error("solution cache get: ", err)
	}
	solution, err = npuzzle.Solve(board)
	if err != nil {
		return nil, msSince(start), err
	}
	if err := cache.Set(key, solution); err != nil {
		log.Error("solution cache set: ", err)
	}
	return solution, msSince(start), nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if session.Solution == nil {
		solution, solveMs, err := solveBoard(session.Board)
		if errors.Is(err, npuzzle.ErrUnsolvable) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte("puzzle is unsolvable"))
			return
		} else if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
			return
		}
		session.Solution = solution
		session.SolveMs = &solveMs
		session.SolvedAt = time.Now().UTC()
		if err := pg.UpdatePuzzleSession(r.Context(), session); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
			return
		}
	}
	if err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

type AdHocSolutionJSON struct {
	Board      [][]int  `json:"board"`
	PathLength int      `json:"path_length"`
	Moves      []string `json:"moves"`
	Expanded   int      `json:"expanded"`
	SolveMs    float64  `json:"solve_ms"`
}

// Accepts a board as plain text, one row per line, tiles separated by spaces,
// 0 for the blank:
//
//	1 2 3
//	4 0 6
//	7 5 8
//
// and replies with the optimal move sequence. No session is created.
func handleSolveAdHoc(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	board, err := npuzzle.ParseBoard(string(body))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	if board.Width > config.Solver.MaxWidth {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("board too large"))
		return
	}
	solution, solveMs, err := solveBoard(board)
	if errors.Is(err, npuzzle.ErrUnsolvable) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("puzzle is unsolvable"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	payload := AdHocSolutionJSON{
		Board:      board.Rows(),
		PathLength: len(solution.Steps) - 1,
		Moves:      moveNames(solution.Moves()),
		Expanded:   solution.Expanded,
		SolveMs:    solveMs,
	}
	if err := sendJSON(w, payload); err != nil {
		log.Error(err)
	}
}
