package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrUnknownReference = errors.New("unknown user or product")
)

type GormRepo struct {
	DB *gorm.DB
}
