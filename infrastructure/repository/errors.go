package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrAlreadyExists indica que a linha (post_id, date) já foi gravada por outra execução
	ErrAlreadyExists = errors.New("registro já existe")
	ErrNotFound      = errors.New("registro não encontrado")
)

const pqUniqueViolation = "23505"

// PersistenceError identifica a operação e a tabela de uma falha de banco
type PersistenceError struct {
	Op    string
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	var pqErr *pq.Error
	if errors.As(e.Err, &pqErr) {
		return fmt.Sprintf("erro no banco de dados (%s %s): %v (código: %s)", e.Op, e.Table, pqErr, pqErr.Code)
	}
	return fmt.Sprintf("erro no banco de dados (%s %s): %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func newPersistenceError(op, table string, err error) error {
	return &PersistenceError{Op: op, Table: table, Err: err}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
