package mapping

import (
	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/models"
)

// ToModelLoan converts a domain.Loan to its row representation.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:        d.LoanID,
		UserID:        d.UserID,
		BookID:        d.BookID,
		BookTitle:     d.BookTitle,
		UserEmail:     d.UserEmail,
		LoanDate:      d.LoanDate,
		DueDate:       d.DueDate,
		ReturnDate:    d.ReturnDate,
		Status:        models.LoanStatus(d.Status),
		PenaltyAmount: d.PenaltyAmount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a loans row to a domain.Loan.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:        m.LoanID,
		UserID:        m.UserID,
		BookID:        m.BookID,
		BookTitle:     m.BookTitle,
		UserEmail:     m.UserEmail,
		LoanDate:      m.LoanDate,
		DueDate:       m.DueDate,
		ReturnDate:    m.ReturnDate,
		Status:        domain.LoanStatus(m.Status),
		PenaltyAmount: m.PenaltyAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoans converts a slice of rows.
func ToDomainLoans(ms []models.Loan) []domain.Loan {
	loans := make([]domain.Loan, len(ms))
	for i, m := range ms {
		loans[i] = ToDomainLoan(m)
	}
	return loans
}

// ToDomainBookLoanCounts converts aggregation rows.
func ToDomainBookLoanCounts(ms []models.BookLoanCount) []domain.BookLoanCount {
	counts := make([]domain.BookLoanCount, len(ms))
	for i, m := range ms {
		counts[i] = domain.BookLoanCount{BookID: m.BookID, LoanCount: m.LoanCount}
	}
	return counts
}
