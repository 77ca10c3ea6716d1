package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo común entre *pgxpool.Pool, pgx.Tx y pgxmock: los repositorios
// funcionan igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner abre transacciones (pool real o mock).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón ILIKE '%s%' escapando comodines.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// where acumula condiciones y argumentos posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente placeholder con el mismo valor.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", placeholder(len(w.args))))
}

func (w *where) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// orderBy devuelve "col ASC|DESC" usando solo columnas de la lista blanca.
func orderBy(columns map[string]string, field, def string, desc bool) string {
	col, ok := columns[field]
	if !ok {
		col = columns[def]
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
