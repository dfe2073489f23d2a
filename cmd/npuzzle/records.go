package main

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type SolveRecord struct {
	SessionId    string  `json:"session_id" db:"puzzle_session_id"`
	Username     *string `json:"username" db:"username"`
	Width        int     `json:"width" db:"width"`
	ShuffleSteps int     `json:"shuffle_steps" db:"shuffle_steps"`
	PathLength   int     `json:"path_length" db:"path_length"`
	Expanded     int     `json:"expanded" db:"expanded"`
	SolveMs      float64 `json:"solve_ms" db:"solve_ms"`
}

type SolveRecordFilters struct {
	username *string
	width    *int
}

func (f SolveRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = &f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.width != nil {
		args["width"] = &f.width
		whereClauses = append(whereClauses, "width = @width")
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type SolveRecordsOption = func(*SolveRecordFilters) error

func SolveRecordsForPlayer(username string) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.username = &username
		return nil
	}
}

func SolveRecordsForWidth(width int) SolveRecordsOption {
	return func(f *SolveRecordFilters) error {
		f.width = &width
		return nil
	}
}

func getSolveRecords(
	ctx context.Context, options ...SolveRecordsOption,
) ([]SolveRecord, error) {
	filters := &SolveRecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		puzzle_session_id::text
		, username
		, width
		, shuffle_steps
		, path_length
		, expanded
		, solve_ms
	from puzzle_session
		left outer join player using (player_id)
	where
		solution is not null
		and solved_at is not null`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " and " + whereClause
	}

	sql += " order by solve_ms"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[SolveRecord])
}
