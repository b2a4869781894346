package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vincent/forexledger/internal/adapter/http/dto"
	"github.com/vincent/forexledger/internal/adapter/http/middleware"
	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

// BookService defines the behavior needed by BookHandler.
type BookService interface {
	CreateBook(ctx context.Context, input usecase.CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*usecase.BookDetail, error)
	ListBooksByCreator(ctx context.Context, creator string) ([]*usecase.BookDetail, error)
}

// BookHandler handles book-related HTTP requests.
type BookHandler struct {
	bookUC BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookUC BookService) *BookHandler {
	return &BookHandler{bookUC: bookUC}
}

// Create creates a new book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	book, err := h.bookUC.CreateBook(r.Context(), req.ToUseCaseInput(creatorFrom(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create book", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BookFromDomain(book))
}

// Get retrieves a book valued at the current rate.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing book ID", "")
		return
	}

	detail, err := h.bookUC.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get book", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BookDetailFromUseCase(detail))
}

// List lists the caller's books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.bookUC.ListBooksByCreator(r.Context(), creatorFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list books", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBooksResponse{
		Books: dto.BookDetailsFromUseCase(details),
		Total: int64(len(details)),
	})
}

// creatorFrom resolves the caller's identity: the authenticated user when
// auth is enabled, an explicit header otherwise.
func creatorFrom(r *http.Request) string {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		return user.ID
	}

	if creator := r.Header.Get("X-Creator"); creator != "" {
		return creator
	}

	return "anonymous"
}
