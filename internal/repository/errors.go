package repository

import "github.com/jackc/pgx/v5"

// errNoRows lets Exec-based writes report a missing row the same way
// QueryRow-based reads do, so services map both with errors.Is(err, pgx.ErrNoRows).
var errNoRows = pgx.ErrNoRows
