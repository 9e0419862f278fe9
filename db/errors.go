package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var ErrEmailTaken = fmt.Errorf("email already in use")
var ErrDuplicateWirdEntry = fmt.Errorf("a wird entry already exists for this date")

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
