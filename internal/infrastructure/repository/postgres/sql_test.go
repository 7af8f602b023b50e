package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be treated as not found")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatal("arbitrary errors are not not-found")
	}
	if isNotFound(nil) {
		t.Fatal("nil is not not-found")
	}
}
