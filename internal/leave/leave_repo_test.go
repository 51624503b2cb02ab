package leave_test

import (
	"context"
	"regexp"
	"testing"

	"hrconsole/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dua koneksi mock terpisah: gorm dibuka di atas pool, transaksi dibuat di
// koneksi lain. Statement lewat WithTx harus mendarat di koneksi transaksi,
// bukan balik ke pool.
func TestLeaveRepository_WithTxRoutesThroughTransaction(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: poolDB, PreferSimpleProtocol: true}),
		&gorm.Config{SkipDefaultTransaction: true},
	)
	assert.NoError(t, err)

	repo := leave.NewRepository(gormDB)

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	l := &leave.LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: "LVR-000001",
		CompanyID:     uuid.New(),
		EmployeeID:    uuid.New(),
		LeaveTypeID:   uuid.New(),
		Status:        leave.StatusPending,
		CreatedBy:     uuid.New(),
	}
	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), l))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
