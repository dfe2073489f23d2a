package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/npuzzle-server/internal/npuzzle"
)

const (
	createPlayerTable = `
CREATE TABLE IF NOT EXISTS player (
	player_id 		bigint 	GENERATED ALWAYS AS IDENTITY
							PRIMARY KEY,
	username 		text 	UNIQUE NOT NULL,
	password_hash 	bytea 	NOT NULL,
	created_at 		timestamp with time zone
							DEFAULT now()
							NOT NULL
);`
	createPuzzleSessionTable = `
CREATE TABLE IF NOT EXISTS puzzle_session (
	puzzle_session_id	bigint 	GENERATED ALWAYS AS IDENTITY
								PRIMARY KEY,
	player_id			bigint	REFERENCES player (player_id)
								NULL,
	width				integer	NOT NULL,
	shuffle_steps		integer	NOT NULL,
	board				bytea	NOT NULL,
	solution			bytea	NULL,
	path_length			integer	NULL,
	expanded			integer	NULL,
	solve_ms			double precision
								NULL,
	started_at			timestamp with time zone
								DEFAULT now()
								NOT NULL,
	solved_at			timestamp with time zone
								NULL
	);`
	initSql = createPlayerTable + createPuzzleSessionTable
)

type postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dbUrl string) (*postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ctx, initSql); err != nil {
		return nil, err
	}
	return &postgres{db}, nil
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (pg *postgres) CreatePuzzleSession(
	ctx context.Context, playerId *int, board npuzzle.Board, shuffleSteps int,
) (*PuzzleSession, error) {
	var (
		boardBuf  bytes.Buffer
		sessionId int
		startedAt time.Time
	)
	if err := gob.NewEncoder(&boardBuf).Encode(board); err != nil {
		return nil, err
	}
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO puzzle_session (
			player_id, width, shuffle_steps, board
		)
		VALUES (
			@player_id, @width, @shuffle_steps, @board
		)
		RETURNING puzzle_session_id, started_at;`,
		pgx.NamedArgs{
			"player_id":     playerId,
			"width":         board.Width,
			"shuffle_steps": shuffleSteps,
			"board":         boardBuf.Bytes(),
		}).Scan(&sessionId, &startedAt); err != nil {
		return nil, err
	}
	session := &PuzzleSession{
		SessionId:    sessionId,
		PlayerId:     playerId,
		Board:        board,
		ShuffleSteps: shuffleSteps,
		StartedAt:    startedAt,
	}
	return session, nil
}

func (pg *postgres) GetSession(
	ctx context.Context, sessionId int,
) (*PuzzleSession, error) {
	var (
		playerId     *int
		boardBuf     []byte
		solutionBuf  []byte
		shuffleSteps int
		solveMs      *float64
		startedAt    time.Time
		solvedAt     pgtype.Timestamptz
	)
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, board, solution, shuffle_steps, solve_ms, started_at, solved_at
		FROM puzzle_session
		WHERE puzzle_session_id = $1;`,
		sessionId).Scan(
		&playerId, &boardBuf, &solutionBuf, &shuffleSteps, &solveMs,
		&startedAt, &solvedAt,
	); err != nil {
		return nil, err
	}
	var board npuzzle.Board
	if err := gob.NewDecoder(bytes.NewBuffer(boardBuf)).Decode(&board); err != nil {
		return nil, err
	}
	var solution *npuzzle.Solution
	if solutionBuf != nil {
		solution = &npuzzle.Solution{}
		if err := gob.NewDecoder(bytes.NewBuffer(solutionBuf)).Decode(solution); err != nil {
			return nil, err
		}
	}
	session := &PuzzleSession{
		SessionId:    sessionId,
		PlayerId:     playerId,
		Board:        board,
		ShuffleSteps: shuffleSteps,
		Solution:     solution,
		SolveMs:      solveMs,
		StartedAt:    startedAt,
		SolvedAt:     solvedAt.Time,
	}
	return session, nil
}

func (pg *postgres) UpdatePuzzleSession(
	ctx context.Context, session *PuzzleSession,
) error {
	var (
		solutionBuf []byte
		pathLength  *int
		expanded    *int
	)
	if session.Solution != nil {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(session.Solution); err != nil {
			return err
		}
		solutionBuf = buf.Bytes()
		n := len(session.Solution.Steps) - 1
		pathLength = &n
		expanded = &session.Solution.Expanded
	}
	_, err := pg.db.Exec(ctx, `
		UPDATE puzzle_session
		SET solution = @solution
			, path_length = @path_length
			, expanded = @expanded
			, solve_ms = @solve_ms
			, solved_at = @solved_at
		WHERE puzzle_session_id = @puzzle_session_id;`,
		pgx.NamedArgs{
			"puzzle_session_id": session.SessionId,
			"solution":          solutionBuf,
			"path_length":       pathLength,
			"expanded":          expanded,
			"solve_ms":          session.SolveMs,
			"solved_at":         session.SolvedAt,
		})
	return err
}
