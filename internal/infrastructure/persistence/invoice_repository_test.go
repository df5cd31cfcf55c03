package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/invoicehub/backend/internal/domain/invoicing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func lockedInvoice(t *testing.T) *invoicing.Invoice {
	t.Helper()
	line, err := invoicing.NewInvoiceLine("Consulting services", decimal.NewFromInt(10), decimal.NewFromInt(150))
	require.NoError(t, err)
	invoice, err := invoicing.NewInvoice("ISC-007/2024", "John Doe", "john@example.com",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), []invoicing.InvoiceLine{line})
	require.NoError(t, err)
	require.NoError(t, invoice.ChangeStatus(invoicing.InvoiceStatusPaid))
	return invoice
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loads invoice with its lines", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		invoiceRows := sqlmock.NewRows([]string{
			"id", "version", "invoice_number", "customer_name", "customer_email",
			"subtotal_amount", "gst_amount", "total_amount", "status",
		}).AddRow(invoiceID, 1, "ISC-007/2024", "John Doe", "john@example.com",
			"1500", "225", "1725", "Invoice Sent")

		lineRows := sqlmock.NewRows([]string{
			"id", "invoice_id", "line_no", "description", "quantity", "unit_price", "amount",
		}).AddRow(uuid.New(), invoiceID, 0, "Consulting services", "10", "150", "1500")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows)
		mock.ExpectQuery(`SELECT \* FROM "invoice_lines" WHERE "invoice_lines"\."invoice_id" = \$1 ORDER BY line_no ASC`).
			WithArgs(invoiceID).
			WillReturnRows(lineRows)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		require.NoError(t, err)
		assert.Equal(t, "ISC-007/2024", invoice.InvoiceNumber)
		require.Len(t, invoice.Lines, 1)
		assert.Equal(t, "Consulting services", invoice.Lines[0].Description)
		assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(1725)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("updates the row when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := lockedInvoice(t)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConcurrencyConflict when the version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := lockedInvoice(t)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Delete(t *testing.T) {
	t.Run("removes comments and lines with the invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "invoice_comments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "invoice_lines" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "invoices" WHERE id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the invoice row is missing", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "invoice_comments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "invoice_lines" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "invoices" WHERE id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), invoiceID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SumTotalAmount(t *testing.T) {
	t.Run("sums matching invoices", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("3450"))

		sum, err := repo.SumTotalAmount(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(3450)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_ExistsByInvoiceNumber(t *testing.T) {
	t.Run("returns true for a taken number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE invoice_number = \$1`).
			WithArgs("ISC-007/2024").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByInvoiceNumber(context.Background(), "ISC-007/2024")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty number short-circuits without a query", func(t *testing.T) {
		repo, _, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByInvoiceNumber(context.Background(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
