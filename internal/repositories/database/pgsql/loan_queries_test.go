package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLoanByIDQuery(t *testing.T) {
	query, args, err := build(findLoanByIDQuery("loan-1"))
	require.NoError(t, err)

	assert.Contains(t, query, `FROM "loans"`)
	assert.Contains(t, query, `"loan_id" = $1`)
	assert.Contains(t, query, `"penalty_amount"`)
	assert.Equal(t, []interface{}{"loan-1"}, args)
}

func TestListQueries_Ordering(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		build     func() (string, []interface{}, error)
		wantWhere []string
		wantOrder string
	}{
		{
			name:      "all loans newest first",
			build:     func() (string, []interface{}, error) { return build(listLoansQuery()) },
			wantOrder: `ORDER BY "loan_date" DESC`,
		},
		{
			name:      "by user newest first",
			build:     func() (string, []interface{}, error) { return build(listLoansByUserQuery("u1")) },
			wantWhere: []string{`"user_id" = $1`},
			wantOrder: `ORDER BY "loan_date" DESC`,
		},
		{
			name:      "by book newest first",
			build:     func() (string, []interface{}, error) { return build(listLoansByBookQuery("b1")) },
			wantWhere: []string{`"book_id" = $1`},
			wantOrder: `ORDER BY "loan_date" DESC`,
		},
		{
			name:      "active by user earliest due first",
			build:     func() (string, []interface{}, error) { return build(listActiveLoansByUserQuery("u1")) },
			wantWhere: []string{`"status" = $1`, `"user_id" = $2`},
			wantOrder: `ORDER BY "due_date" ASC`,
		},
		{
			name:      "overdue earliest due first",
			build:     func() (string, []interface{}, error) { return build(listOverdueLoansQuery(now)) },
			wantWhere: []string{`"status" = $1`, `"due_date" < $2`},
			wantOrder: `ORDER BY "due_date" ASC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _, err := tt.build()
			require.NoError(t, err)

			for _, w := range tt.wantWhere {
				assert.Contains(t, query, w)
			}
			assert.Contains(t, query, tt.wantOrder)
		})
	}
}

func TestOverdueQueries_BindActiveStatusAndNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, listArgs, err := build(listOverdueLoansQuery(now))
	require.NoError(t, err)
	countQuery, countArgs, err := build(countOverdueLoansQuery(now))
	require.NoError(t, err)

	assert.Equal(t, "ACTIVE", listArgs[0])
	assert.Equal(t, listArgs, countArgs)
	assert.Contains(t, countQuery, `SELECT COUNT(*) FROM "loans"`)
	assert.Contains(t, countQuery, `"due_date" < $2`)
}

func TestCountQueries_SelectCountOnly(t *testing.T) {
	tests := []struct {
		name      string
		build     func() (string, []interface{}, error)
		wantWhere []string
		wantArgs  []interface{}
	}{
		{
			name:  "all loans",
			build: func() (string, []interface{}, error) { return build(countLoans()) },
		},
		{
			name:      "active loans",
			build:     func() (string, []interface{}, error) { return build(countActiveLoansQuery()) },
			wantWhere: []string{`"status" = $1`},
			wantArgs:  []interface{}{"ACTIVE"},
		},
		{
			name:      "active loans by user",
			build:     func() (string, []interface{}, error) { return build(countActiveLoansByUserQuery("u1")) },
			wantWhere: []string{`"status" = $1`, `"user_id" = $2`},
			wantArgs:  []interface{}{"ACTIVE", "u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)

			assert.Contains(t, query, `SELECT COUNT(*) FROM "loans"`)
			assert.NotContains(t, query, `"penalty_amount"`)
			for _, w := range tt.wantWhere {
				assert.Contains(t, query, w)
			}
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestFindActiveLoanByUserAndBookQuery(t *testing.T) {
	query, args, err := build(findActiveLoanByUserAndBookQuery("u1", "b1"))
	require.NoError(t, err)

	assert.Contains(t, query, `"status" = $1`)
	assert.Contains(t, query, `"user_id" = $2`)
	assert.Contains(t, query, `"book_id" = $3`)
	assert.Contains(t, query, "LIMIT $4")
	assert.Equal(t, []interface{}{"ACTIVE", "u1", "b1", int64(1)}, args)
}

func TestTopBorrowedBooksQuery(t *testing.T) {
	query, args, err := build(topBorrowedBooksQuery(5))
	require.NoError(t, err)

	assert.Contains(t, query, `COUNT(*) AS "loan_count"`)
	assert.Contains(t, query, `GROUP BY "book_id"`)
	assert.Contains(t, query, `ORDER BY "loan_count" DESC, "book_id" ASC`)
	assert.NotContains(t, query, "WHERE")
	assert.Equal(t, []interface{}{int64(5)}, args)
}

func TestInsertAndUpdateLoanQueries(t *testing.T) {
	loanDate := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	returned := loanDate.Add(20 * 24 * time.Hour)
	row := models.Loan{
		LoanID:        "loan-1",
		UserID:        "u1",
		BookID:        "b1",
		BookTitle:     "Dune",
		UserEmail:     "reader@example.com",
		LoanDate:      loanDate,
		DueDate:       loanDate.Add(14 * 24 * time.Hour),
		ReturnDate:    &returned,
		Status:        "RETURNED",
		PenaltyAmount: decimal.NewFromInt(3),
	}

	insert, insertArgs, err := build(insertLoanQuery(row))
	require.NoError(t, err)
	assert.Contains(t, insert, `INSERT INTO "loans"`)
	assert.Contains(t, insert, `"loan_id"`)
	assert.Contains(t, insertArgs, "loan-1")
	assert.Contains(t, insertArgs, "3.00")

	update, updateArgs, err := build(updateLoanQuery(row))
	require.NoError(t, err)
	assert.Contains(t, update, `UPDATE "loans" SET`)
	assert.Contains(t, update, `"return_date"=`)
	assert.NotContains(t, update, `"loan_id"=`)
	assert.Contains(t, update, `WHERE ("loan_id" = $`)
	assert.Equal(t, "loan-1", updateArgs[len(updateArgs)-1])
}

func TestTranslateWriteError_PassesThroughUnknownErrors(t *testing.T) {
	err := translateWriteError(assert.AnError, "loan-1", "save")

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to save loan loan-1")
}
