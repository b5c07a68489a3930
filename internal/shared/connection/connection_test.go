package connection

import (
	"testing"

	"go-tracking/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindTx(t *testing.T) {
	gdb, sqlDB, mock := testutil.NewGormMock(t)

	assert.Same(t, gdb, BindTx(gdb, nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE counters").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	bound := BindTx(gdb, tx)
	require.NoError(t, bound.Exec("UPDATE counters SET last_value = 0").Error)
	require.NoError(t, tx.Commit())

	assert.Same(t, tx, bound.Statement.ConnPool)
	assert.Same(t, sqlDB, gdb.Statement.ConnPool)
	assert.NoError(t, mock.ExpectationsWereMet())
}
