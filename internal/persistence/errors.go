package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"inkwell/internal/core"
)

var (
	ErrNoDatabaseURL = errors.New("no database url provided")
)

// SQLSTATE invalid_text_representation, returned for malformed uuids.
const invalidTextRepresentation = "22P02"

// Translate maps driver errors to core error kinds. what and id describe the
// record for the error message.
func Translate(err error, what, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", core.ErrNotFound, what, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return fmt.Errorf("%w: %s %s", core.ErrNotFound, what, id)
	}

	return fmt.Errorf("%w: %s: %w", core.ErrStoreFailure, what, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
