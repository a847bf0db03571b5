package entity

import "errors"

var (
	ErrNotFound  = errors.New("registro não encontrado")
	ErrSlugTaken = errors.New("slug já utilizado por outra organização")
)
