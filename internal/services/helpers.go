package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
