package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSteps(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range steps {
		assert.NotEmpty(t, s.name)
		assert.False(t, seen[s.name], "passo duplicado: %s", s.name)
		seen[s.name] = true
		assert.Contains(t, s.statement, "IF NOT EXISTS", "passo %s precisa ser idempotente", s.name)
	}
}

func TestLedgerUniqueness(t *testing.T) {
	for _, s := range steps {
		if s.name == "create cpm_ledger" {
			assert.True(t, strings.Contains(s.statement, "UNIQUE (post_id, date)"))
			return
		}
	}
	t.Fatal("passo create cpm_ledger não encontrado")
}
