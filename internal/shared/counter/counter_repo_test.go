package counter

import (
	"context"
	"errors"
	"testing"

	"go-tracking/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRepository_GetNextValue(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery("INSERT INTO counters").
		WithArgs(TypeEmployeeNumber).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

	v, err := repo.GetNextValue(context.Background(), TypeEmployeeNumber)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)

	mock.ExpectQuery("INSERT INTO counters").
		WithArgs(TypeEmployeeNumber).
		WillReturnError(errors.New("boom"))

	_, err = repo.GetNextValue(context.Background(), TypeEmployeeNumber)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
