package cpm

import "errors"

var (
	ErrInvalidInput    = errors.New("entrada de acúmulo inválida")
	ErrInvalidSettings = errors.New("configuração de CPM inválida")
)
