package service

import (
	"context"
	"strings"

	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/Astemirdum/library-system/library/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	pub  Publisher
}

func NewService(repo repository.Repository, pub Publisher, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		pub:  pub,
	}
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book := model.Book{
		Title:  strings.TrimSpace(req.Title),
		Author: strings.TrimSpace(req.Author),
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}
	return s.repo.CreateBook(ctx, book)
}

func (s *Service) UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (model.Book, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if patch.Author != nil {
		trimmed := strings.TrimSpace(*patch.Author)
		patch.Author = &trimmed
	}
	return s.repo.UpdateBook(ctx, id, patch)
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}

// Borrow runs the atomic decrement-and-log transaction, then feeds the
// borrow event stream. Publish failures do not undo the borrow: the
// transaction has committed and the stream is an audit feed.
func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest) (model.BorrowResult, error) {
	book, lg, err := s.repo.Borrow(ctx, req)
	if err != nil {
		return model.BorrowResult{}, err
	}

	if s.pub != nil {
		event := model.BorrowEvent{
			EventUid:    uuid.NewString(),
			BorrowLogID: lg.ID,
			BookID:      lg.BookID,
			UserID:      lg.UserID,
			BorrowDate:  lg.BorrowDate,
			Latitude:    lg.Latitude,
			Longitude:   lg.Longitude,
		}
		if err := s.pub.PublishBorrowEvent(ctx, event); err != nil {
			s.log.Error("publish borrow event", zap.Error(err), zap.Int("borrowLogId", lg.ID))
		}
	}

	return model.BorrowResult{
		BorrowLog: lg,
		Book: model.BorrowedBook{
			ID:             book.ID,
			Title:          book.Title,
			Author:         book.Author,
			RemainingStock: book.Stock,
		},
	}, nil
}

func (s *Service) ListBorrowLogs(ctx context.Context) ([]model.BorrowLogRecord, error) {
	return s.repo.ListBorrowLogs(ctx)
}

func (s *Service) BorrowStats(ctx context.Context) ([]model.BorrowStat, error) {
	return s.repo.BorrowStats(ctx)
}

// IngestBorrowEvent is the kafka consumer entrypoint for the stats table.
func (s *Service) IngestBorrowEvent(ctx context.Context, event model.BorrowEvent) error {
	return s.repo.IncBorrowStat(ctx, event.BookID)
}

func (s *Service) RegisterUser(ctx context.Context, req model.UserCreateRequest) error {
	return s.repo.CreateUser(ctx, model.User{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     req.Role,
	})
}

func (s *Service) GetUser(ctx context.Context, username string) (model.User, error) {
	return s.repo.GetUser(ctx, username)
}
