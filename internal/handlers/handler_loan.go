package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/dto"
	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
	"github.com/SscSPs/bookhub_loan_service/internal/utils"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
	posthog     *utils.PosthogClientWrapper
	now         func() time.Time
}

func newLoanHandler(ls portssvc.LoanSvcFacade, posthog *utils.PosthogClientWrapper) *loanHandler {
	return &loanHandler{
		loanService: ls,
		posthog:     posthog,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RegisterLoanRoutes registers routes related to loans. posthogClient may be nil.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newLoanHandler(loanService, posthogClient)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/overdue", h.listOverdueLoans)
		loans.GET("/top-books", h.topBorrowedBooks)
		loans.GET("/admin/dashboard", h.adminDashboard)
		loans.GET("/user/:userID", h.listLoansByUser)
		loans.GET("/user/:userID/active", h.listActiveLoansByUser)
		loans.GET("/user/:userID/active/count", h.countActiveLoansByUser)
		loans.GET("/book/:bookID", h.listLoansByBook)
		loans.GET("/:loanID", h.getLoan)
		loans.PUT("/:loanID/return", h.returnLoan)
	}
}

// writeServiceError maps a service error to a status and a JSON error body.
func writeServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var limitErr *apperrors.LimitExceededError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &limitErr):
		logger.Warn("Active loan limit reached", slog.Int("active_loans", limitErr.Current))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Maximum number of active loans reached",
			"activeLoans": limitErr.Current,
			"limit":       limitErr.Limit,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active loan for this book"})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Book is not available"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrRemoteUnreachable):
		logger.Error("Upstream service unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
	case errors.As(err, &appErr):
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *loanHandler) listResponse(loans []domain.Loan) []dto.LoanResponse {
	return dto.ToListLoanResponse(loans, h.now(), h.loanService.Policy().PenaltyRatePerDay)
}

// createLoan godoc
// @Summary Borrow a book
// @Description Creates an active loan after checking the borrower, the active loan limit and book availability
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Borrower and book"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown user/book"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate loan or book unavailable"
// @Failure 422 {object} map[string]any "Active loan limit reached"
// @Failure 502 {object} map[string]string "Upstream service unavailable"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// An unknown borrower or book is a bad request, not a missing loan.
			logger.Warn("Borrower or book not found", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writeServiceError(c, logger, err, "Failed to create loan")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "loan_created", map[string]any{
		"loan_id": loan.LoanID,
		"book_id": loan.BookID,
	})
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan, h.now(), h.loanService.Policy().PenaltyRatePerDay))
}

// returnLoan godoc
// @Summary Return a book
// @Description Marks an active loan returned, freezes its penalty and restores availability
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found or already returned"
// @Failure 502 {object} map[string]string "Upstream service unavailable"
// @Security BearerAuth
// @Router /loans/{loanID}/return [put]
func (h *loanHandler) returnLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := uuidParam(c, "loanID", "Loan not found or already returned")
	if !ok {
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.ReturnLoan(c.Request.Context(), loanID, actorID)
	if err != nil {
		writeServiceError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to return loan")
		return
	}
	if loan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found or already returned"})
		return
	}

	middleware.PosthogEvent(c, h.posthog, "loan_returned", map[string]any{
		"loan_id": loan.LoanID,
		"penalty": loan.PenaltyAmount.StringFixed(2),
	})
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, h.now(), h.loanService.Policy().PenaltyRatePerDay))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := uuidParam(c, "loanID", "Loan not found")
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), loanID)
	if err != nil {
		writeServiceError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, h.now(), h.loanService.Policy().PenaltyRatePerDay))
}

// listLoans godoc
// @Summary List all loans
// @Description Lists every loan, newest first
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loans, err := h.loanService.ListLoans(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, h.listResponse(loans))
}

// listLoansByUser godoc
// @Summary List a user's loans
// @Tags loans
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} dto.LoanResponse
// @Failure 404 {object} map[string]string "Malformed user ID"
// @Security BearerAuth
// @Router /loans/user/{userID} [get]
func (h *loanHandler) listLoansByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := uuidParam(c, "userID", "User not found")
	if !ok {
		return
	}
	loans, err := h.loanService.ListLoansByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, h.listResponse(loans))
}

// listActiveLoansByUser godoc
// @Summary List a user's active loans
// @Description Active loans ordered by due date
// @Tags loans
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} dto.LoanResponse
// @Failure 404 {object} map[string]string "Malformed user ID"
// @Security BearerAuth
// @Router /loans/user/{userID}/active [get]
func (h *loanHandler) listActiveLoansByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := uuidParam(c, "userID", "User not found")
	if !ok {
		return
	}
	loans, err := h.loanService.ListActiveLoansByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list active loans")
		return
	}
	c.JSON(http.StatusOK, h.listResponse(loans))
}

// countActiveLoansByUser godoc
// @Summary Count a user's active loans
// @Tags loans
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.ActiveLoanCountResponse
// @Failure 404 {object} map[string]string "Malformed user ID"
// @Security BearerAuth
// @Router /loans/user/{userID}/active/count [get]
func (h *loanHandler) countActiveLoansByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := uuidParam(c, "userID", "User not found")
	if !ok {
		return
	}
	count, err := h.loanService.CountActiveLoansByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to count active loans")
		return
	}
	c.JSON(http.StatusOK, dto.ActiveLoanCountResponse{UserID: userID, ActiveLoans: count})
}

// listLoansByBook godoc
// @Summary List a book's loans
// @Tags loans
// @Produce json
// @Param bookID path string true "Book ID"
// @Success 200 {array} dto.LoanResponse
// @Failure 404 {object} map[string]string "Malformed book ID"
// @Security BearerAuth
// @Router /loans/book/{bookID} [get]
func (h *loanHandler) listLoansByBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID, ok := uuidParam(c, "bookID", "Book not found")
	if !ok {
		return
	}
	loans, err := h.loanService.ListLoansByBook(c.Request.Context(), bookID)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, h.listResponse(loans))
}

// listOverdueLoans godoc
// @Summary List overdue loans
// @Description Active loans past their due date, earliest due first
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /loans/overdue [get]
func (h *loanHandler) listOverdueLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loans, err := h.loanService.ListOverdueLoans(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to list overdue loans")
		return
	}
	c.JSON(http.StatusOK, h.listResponse(loans))
}

// topBorrowedBooks godoc
// @Summary Most borrowed books
// @Tags reports
// @Produce json
// @Param limit query int false "Number of books (1-50)"
// @Success 200 {array} dto.BookResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Security BearerAuth
// @Router /loans/top-books [get]
func (h *loanHandler) topBorrowedBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TopBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid top books query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	books, err := h.loanService.TopBorrowedBooks(c.Request.Context(), params.Limit)
	if err != nil {
		writeServiceError(c, logger, err, "Failed to compute top books")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBookResponse(books))
}

// adminDashboard godoc
// @Summary Loan dashboard
// @Description Total, active and overdue loan counts plus the most borrowed books
// @Tags reports
// @Produce json
// @Success 200 {object} dto.AdminDashboardResponse
// @Security BearerAuth
// @Router /loans/admin/dashboard [get]
func (h *loanHandler) adminDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dash, err := h.loanService.AdminDashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminDashboardResponse(dash))
}
