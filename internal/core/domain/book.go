package domain

// Book is the catalog's view of a title. AvailableCopies is owned by the
// catalog service and only changes through its atomic decrement/increment calls.
type Book struct {
	BookID          string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
	LoanCount       int    `json:"loanCount"`
}

// IsAvailable reports whether at least one copy can be lent.
func (b Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// WithLoanCount returns a copy of b with LoanCount set. b is left untouched.
func (b Book) WithLoanCount(count int) Book {
	b.LoanCount = count
	return b
}

// BookLoanCount is one row of the loans-per-book aggregation.
type BookLoanCount struct {
	BookID    string
	LoanCount int
}
