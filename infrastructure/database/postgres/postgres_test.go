package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewFromDB(db), mock
}

func TestConnection_RunInTransaction(t *testing.T) {
	t.Run("Commit quando a função não retorna erro", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sales").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.ExecContext(context.Background(), "UPDATE sales SET observation = $1", "ok")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback quando a função falha", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback e repanic quando a função entra em panic", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "kaboom", func() {
			_ = conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
				panic("kaboom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Erro ao iniciar a transação", func(t *testing.T) {
		conn, mock := newMockConnection(t)

		mock.ExpectBegin().WillReturnError(errors.New("sem conexão"))

		called := false
		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
			called = true
			return nil
		})

		assert.Error(t, err)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
