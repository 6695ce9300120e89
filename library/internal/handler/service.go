package handler

import (
	"context"

	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/Astemirdum/library-system/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResult, error)
	ListBorrowLogs(ctx context.Context) ([]model.BorrowLogRecord, error)
	BorrowStats(ctx context.Context) ([]model.BorrowStat, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, req model.UserCreateRequest) error
	GetUser(ctx context.Context, username string) (model.User, error)
}

var (
	_ LibraryService = (*service.Service)(nil)
	_ AuthService    = (*service.Service)(nil)
)
