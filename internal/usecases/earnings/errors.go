package earnings

import "errors"

var (
	ErrPostNotFound = errors.New("post não encontrado")
	ErrNoAnalytics  = errors.New("post ainda não possui coleta de métricas")
)
