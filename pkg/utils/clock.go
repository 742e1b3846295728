package utils

import "time"

// Clock abstrai o "agora" para que regras baseadas em data sejam testáveis
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock sempre devolve o mesmo instante
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
