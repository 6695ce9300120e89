package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Astemirdum/library-system/library/internal/errs"
	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock.go -package=mock_repository github.com/Astemirdum/library-system/library/internal/repository Repository

type BookRepository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

type BorrowLogRepository interface {
	Borrow(ctx context.Context, req model.BorrowRequest) (model.Book, model.BorrowLog, error)
	ListBorrowLogs(ctx context.Context) ([]model.BorrowLogRecord, error)
}

type StatsRepository interface {
	BorrowStats(ctx context.Context) ([]model.BorrowStat, error)
	IncBorrowStat(ctx context.Context, bookID int) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, username string) (model.User, error)
}

type Repository interface {
	BookRepository
	BorrowLogRepository
	StatsRepository
	UserRepository
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName       = `books`
	borrowLogsTableName  = `borrow_logs`
	borrowStatsTableName = `borrow_stats`
	usersTableName       = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "stock", "created_at", "updated_at").
		From(booksTableName).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "stock", "created_at", "updated_at").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "stock").
		Values(book.Title, book.Author, book.Stock).
		Suffix("returning id, title, author, stock, created_at, updated_at").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var created model.Book
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, mapPgError(err)
	}
	return created, nil
}

func (r *repository) UpdateBook(ctx context.Context, id int, patch model.UpdateBookRequest) (model.Book, error) {
	q := qb.Update(booksTableName).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("returning id, title, author, stock, created_at, updated_at")
	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Author != nil {
		q = q.Set("author", *patch.Author)
	}
	if patch.Stock != nil {
		q = q.Set("stock", *patch.Stock)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var updated model.Book
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, mapPgError(err)
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Borrow decrements stock and appends the log in one transaction.
// The conditional update takes the row lock, so racing borrows of the
// last copy serialize and the loser gets ErrOutOfStock.
func (r *repository) Borrow(ctx context.Context, req model.BorrowRequest) (model.Book, model.BorrowLog, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Book{}, model.BorrowLog{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	const decrement = `
update books
    set stock = stock - 1, updated_at = now()
where id = $1 and stock > 0
returning id, title, author, stock, created_at, updated_at`

	var book model.Book
	if err := tx.GetContext(ctx, &book, decrement, req.BookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`select exists(select 1 from books where id = $1)`, req.BookID); err != nil {
				return model.Book{}, model.BorrowLog{}, err
			}
			if !exists {
				return model.Book{}, model.BorrowLog{}, errs.ErrNotFound
			}
			return model.Book{}, model.BorrowLog{}, errs.ErrOutOfStock
		}
		return model.Book{}, model.BorrowLog{}, mapPgError(err)
	}

	query, args, err := qb.Insert(borrowLogsTableName).
		Columns("user_id", "book_id", "borrow_date", "latitude", "longitude").
		Values(req.UserID, req.BookID, time.Now().UTC(), *req.Latitude, *req.Longitude).
		Suffix("returning id, user_id, book_id, borrow_date, latitude, longitude").
		ToSql()
	if err != nil {
		return model.Book{}, model.BorrowLog{}, err
	}
	var lg model.BorrowLog
	if err := tx.GetContext(ctx, &lg, query, args...); err != nil {
		r.log.Error("Borrow insert log", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, model.BorrowLog{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Book{}, model.BorrowLog{}, errors.Wrap(err, "commit")
	}
	return book, lg, nil
}

type borrowLogRow struct {
	model.BorrowLog
	BookTitle  sql.NullString `db:"book_title"`
	BookAuthor sql.NullString `db:"book_author"`
}

func (r *repository) ListBorrowLogs(ctx context.Context) ([]model.BorrowLogRecord, error) {
	query, args, err := qb.Select(
		"bl.id", "bl.user_id", "bl.book_id", "bl.borrow_date", "bl.latitude", "bl.longitude",
		"b.title as book_title", "b.author as book_author").
		From(borrowLogsTableName + " bl").
		LeftJoin(booksTableName + " b on b.id = bl.book_id").
		OrderBy("bl.borrow_date desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []borrowLogRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]model.BorrowLogRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.BorrowLogRecord{BorrowLog: row.BorrowLog}
		if row.BookTitle.Valid {
			rec.Book = &model.BookRef{
				ID:     row.BookID,
				Title:  row.BookTitle.String,
				Author: row.BookAuthor.String,
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *repository) BorrowStats(ctx context.Context) ([]model.BorrowStat, error) {
	query, args, err := qb.Select("book_id", "total_borrows").
		From(borrowStatsTableName).
		OrderBy("total_borrows desc", "book_id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	stats := make([]model.BorrowStat, 0)
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) IncBorrowStat(ctx context.Context, bookID int) error {
	q := `
insert into borrow_stats (book_id, total_borrows)
values ($1, 1)
on conflict (book_id) do update set total_borrows = borrow_stats.total_borrows + 1`
	_, err := r.db.ExecContext(ctx, q, bookID)
	return err
}

func (r *repository) CreateUser(ctx context.Context, user model.User) error {
	query, args, err := qb.Insert(usersTableName).
		Columns("username", "password", "role").
		Values(user.Username, user.Password, user.Role).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return errs.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *repository) GetUser(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select("id", "username", "password", "role").
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapPgError translates storage constraint violations into the
// application taxonomy. The borrow path never trips the stock check
// (the decrement is guarded), so a check violation is a bad write.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.UniqueViolation:
		return errs.Validation(pgErr.Message)
	}
	return err
}
