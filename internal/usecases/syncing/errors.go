package syncing

import (
	"errors"
	"fmt"
)

var ErrListCandidates = errors.New("erro ao listar posts candidatos")

// VerificationMismatch indica que a leitura após a escrita não confirmou o valor gravado
type VerificationMismatch struct {
	PostID   string
	Check    string
	Expected int64
	Actual   int64
	Err      error
}

func (e *VerificationMismatch) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verificação %s do post %s falhou: %v", e.Check, e.PostID, e.Err)
	}
	return fmt.Sprintf("verificação %s do post %s divergente: esperado %d, encontrado %d", e.Check, e.PostID, e.Expected, e.Actual)
}

func (e *VerificationMismatch) Unwrap() error {
	return e.Err
}

// SanityCheckFailure indica divergência entre o último snapshot e o ledger do dia. Nunca é corrigida automaticamente.
type SanityCheckFailure struct {
	PostID        string
	SnapshotViews int64
	LedgerViews   int64
}

func (e *SanityCheckFailure) Error() string {
	return fmt.Sprintf("post %s: snapshot com %d views e ledger com %d views", e.PostID, e.SnapshotViews, e.LedgerViews)
}
