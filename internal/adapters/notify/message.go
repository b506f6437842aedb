package notify

import (
	"fmt"
	"strings"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
)

const overdueSubject = "Overdue Library Loan Notice"

// overdueBody renders the plain-text reminder for one overdue loan.
func overdueBody(r domain.OverdueReminder) string {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	title := r.BookTitle
	if title == "" {
		title = "a borrowed book"
	}
	fmt.Fprintf(&b, "Your loan of %q was due on %s and is now %d day(s) overdue.\n",
		title, r.DueDate.UTC().Format("2006-01-02"), r.DaysLate)
	fmt.Fprintf(&b, "The late penalty so far is %s.\n", r.Penalty.StringFixed(2))
	b.WriteString("Please return the book as soon as possible to stop further penalties.\n")
	fmt.Fprintf(&b, "\nLoan reference: %s\n", r.LoanID)
	b.WriteString("\nBest regards,\nBookHub")
	return b.String()
}
