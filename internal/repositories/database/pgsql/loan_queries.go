package pgsql

import (
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	tableLoans = "loans"

	colLoanID        = "loan_id"
	colUserID        = "user_id"
	colBookID        = "book_id"
	colBookTitle     = "book_title"
	colUserEmail     = "user_email"
	colLoanDate      = "loan_date"
	colDueDate       = "due_date"
	colReturnDate    = "return_date"
	colStatus        = "status"
	colPenaltyAmount = "penalty_amount"
	colCreatedAt     = "created_at"
	colCreatedBy     = "created_by"
	colLastUpdatedAt = "last_updated_at"
	colLastUpdatedBy = "last_updated_by"

	aliasLoanCount = "loan_count"

	constraintActiveUserBook = "uq_loans_active_user_book"
)

// loanColumns is the scan order used by scanLoan.
var loanColumns = []interface{}{
	colLoanID, colUserID, colBookID, colBookTitle, colUserEmail,
	colLoanDate, colDueDate, colReturnDate, colStatus, colPenaltyAmount,
	colCreatedAt, colCreatedBy, colLastUpdatedAt, colLastUpdatedBy,
}

var (
	activeOnly = goqu.Ex{colStatus: string(domain.LoanStatusActive)}

	newestLoanFirst  = goqu.I(colLoanDate).Desc()
	earliestDueFirst = goqu.I(colDueDate).Asc()
)

func overdueAt(now time.Time) exp.Expression {
	return goqu.And(activeOnly, goqu.C(colDueDate).Lt(now))
}

func selectLoans() *goqu.SelectDataset {
	return dialect.From(tableLoans).Prepared(true).Select(loanColumns...)
}

func countLoans() *goqu.SelectDataset {
	return dialect.From(tableLoans).Prepared(true).Select(goqu.COUNT(goqu.Star()))
}

func loanRecord(m models.Loan) goqu.Record {
	return goqu.Record{
		colUserID:        m.UserID,
		colBookID:        m.BookID,
		colBookTitle:     m.BookTitle,
		colUserEmail:     m.UserEmail,
		colLoanDate:      m.LoanDate,
		colDueDate:       m.DueDate,
		colReturnDate:    nullableTime(m.ReturnDate),
		colStatus:        string(m.Status),
		colPenaltyAmount: m.PenaltyAmount.StringFixed(2),
		colCreatedAt:     m.CreatedAt,
		colCreatedBy:     m.CreatedBy,
		colLastUpdatedAt: m.LastUpdatedAt,
		colLastUpdatedBy: m.LastUpdatedBy,
	}
}

func insertLoanQuery(m models.Loan) *goqu.InsertDataset {
	rec := loanRecord(m)
	rec[colLoanID] = m.LoanID
	return dialect.Insert(tableLoans).Prepared(true).Rows(rec)
}

func updateLoanQuery(m models.Loan) *goqu.UpdateDataset {
	return dialect.Update(tableLoans).Prepared(true).
		Set(loanRecord(m)).
		Where(goqu.C(colLoanID).Eq(m.LoanID))
}

func findLoanByIDQuery(loanID string) *goqu.SelectDataset {
	return selectLoans().Where(goqu.C(colLoanID).Eq(loanID))
}

func listLoansQuery() *goqu.SelectDataset {
	return selectLoans().Order(newestLoanFirst)
}

func listLoansByUserQuery(userID string) *goqu.SelectDataset {
	return selectLoans().Where(goqu.C(colUserID).Eq(userID)).Order(newestLoanFirst)
}

func listLoansByBookQuery(bookID string) *goqu.SelectDataset {
	return selectLoans().Where(goqu.C(colBookID).Eq(bookID)).Order(newestLoanFirst)
}

func listActiveLoansByUserQuery(userID string) *goqu.SelectDataset {
	return selectLoans().Where(activeOnly, goqu.C(colUserID).Eq(userID)).Order(earliestDueFirst)
}

func listOverdueLoansQuery(now time.Time) *goqu.SelectDataset {
	return selectLoans().Where(overdueAt(now)).Order(earliestDueFirst)
}

func findActiveLoanByUserAndBookQuery(userID, bookID string) *goqu.SelectDataset {
	return selectLoans().
		Where(activeOnly, goqu.C(colUserID).Eq(userID), goqu.C(colBookID).Eq(bookID)).
		Limit(1)
}

func countActiveLoansByUserQuery(userID string) *goqu.SelectDataset {
	return countLoans().Where(activeOnly, goqu.C(colUserID).Eq(userID))
}

func countActiveLoansQuery() *goqu.SelectDataset {
	return countLoans().Where(activeOnly)
}

func countOverdueLoansQuery(now time.Time) *goqu.SelectDataset {
	return countLoans().Where(overdueAt(now))
}

func topBorrowedBooksQuery(k int) *goqu.SelectDataset {
	return dialect.From(tableLoans).Prepared(true).
		Select(goqu.C(colBookID), goqu.COUNT(goqu.Star()).As(aliasLoanCount)).
		GroupBy(goqu.C(colBookID)).
		Order(goqu.I(aliasLoanCount).Desc(), goqu.I(colBookID).Asc()).
		Limit(uint(k))
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
