package dto

import "github.com/SscSPs/bookhub_loan_service/internal/core/domain"

// BookResponse is a catalog book enriched with its loan count.
type BookResponse struct {
	BookID          string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
	LoanCount       int    `json:"loanCount"`
}

// AdminDashboardResponse represents the admin dashboard.
type AdminDashboardResponse struct {
	TotalLoans   int            `json:"totalLoans"`
	ActiveLoans  int            `json:"activeLoans"`
	OverdueLoans int            `json:"overdueLoans"`
	TopBooks     []BookResponse `json:"topBooks"`
}

// TopBooksParams defines query parameters for the top borrowed books endpoint.
type TopBooksParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

func ToBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		AvailableCopies: b.AvailableCopies,
		TotalCopies:     b.TotalCopies,
		LoanCount:       b.LoanCount,
	}
}

func ToListBookResponse(books []domain.Book) []BookResponse {
	res := make([]BookResponse, len(books))
	for i, b := range books {
		res[i] = ToBookResponse(b)
	}
	return res
}

// ToAdminDashboardResponse converts a domain.AdminDashboard.
func ToAdminDashboardResponse(d *domain.AdminDashboard) AdminDashboardResponse {
	return AdminDashboardResponse{
		TotalLoans:   d.TotalLoans,
		ActiveLoans:  d.ActiveLoans,
		OverdueLoans: d.OverdueLoans,
		TopBooks:     ToListBookResponse(d.TopBooks),
	}
}
