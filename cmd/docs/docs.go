// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/loan_service/main.go -o cmd/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/loans": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List all loans",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LoanResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Borrow a book",
                "parameters": [{"description": "Borrower and book", "name": "loan", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateLoanRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.LoanResponse"}},
                    "400": {"description": "Invalid input or unknown user/book"},
                    "401": {"description": "Unauthorized"},
                    "409": {"description": "Duplicate loan or book unavailable"},
                    "422": {"description": "Active loan limit reached"},
                    "502": {"description": "Upstream service unavailable"}
                }
            }
        },
        "/loans/{loanID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Get a loan",
                "parameters": [{"type": "string", "description": "Loan ID", "name": "loanID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoanResponse"}}, "404": {"description": "Loan not found"}}
            }
        },
        "/loans/{loanID}/return": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Return a book",
                "parameters": [{"type": "string", "description": "Loan ID", "name": "loanID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoanResponse"}}, "404": {"description": "Loan not found or already returned"}, "502": {"description": "Upstream service unavailable"}}
            }
        },
        "/loans/user/{userID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List a user's loans",
                "parameters": [{"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LoanResponse"}}}}
            }
        },
        "/loans/user/{userID}/active": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List a user's active loans",
                "parameters": [{"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LoanResponse"}}}}
            }
        },
        "/loans/user/{userID}/active/count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "Count a user's active loans",
                "parameters": [{"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ActiveLoanCountResponse"}}}
            }
        },
        "/loans/book/{bookID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List a book's loans",
                "parameters": [{"type": "string", "description": "Book ID", "name": "bookID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LoanResponse"}}}}
            }
        },
        "/loans/overdue": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["loans"],
                "summary": "List overdue loans",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LoanResponse"}}}}
            }
        },
        "/loans/top-books": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Most borrowed books",
                "parameters": [{"type": "integer", "description": "Number of books (1-50)", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BookResponse"}}}, "400": {"description": "Invalid limit"}}
            }
        },
        "/loans/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Loan dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AdminDashboardResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.CreateLoanRequest": {
            "type": "object",
            "required": ["bookId", "userId"],
            "properties": {"bookId": {"type": "string"}, "userId": {"type": "string"}}
        },
        "dto.LoanResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "bookId": {"type": "string"},
                "bookTitle": {"type": "string"},
                "userEmail": {"type": "string"},
                "loanDate": {"type": "string"},
                "dueDate": {"type": "string"},
                "returnDate": {"type": "string"},
                "status": {"type": "string"},
                "isOverdue": {"type": "boolean"},
                "penaltyAmount": {"type": "number"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"}
            }
        },
        "dto.ActiveLoanCountResponse": {
            "type": "object",
            "properties": {"userId": {"type": "string"}, "activeLoans": {"type": "integer"}}
        },
        "dto.BookResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "isbn": {"type": "string"},
                "category": {"type": "string"},
                "availableCopies": {"type": "integer"},
                "totalCopies": {"type": "integer"},
                "loanCount": {"type": "integer"}
            }
        },
        "dto.AdminDashboardResponse": {
            "type": "object",
            "properties": {
                "totalLoans": {"type": "integer"},
                "activeLoans": {"type": "integer"},
                "overdueLoans": {"type": "integer"},
                "topBooks": {"type": "array", "items": {"$ref": "#/definitions/dto.BookResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BookHub Loan Service API",
	Description:      "Borrowing, returns, overdue tracking and loan statistics for BookHub.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
