package model

import (
	"time"
)

type Book struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// BorrowLog rows are append-only: never updated or deleted.
type BorrowLog struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"userId" db:"user_id"`
	BookID     int       `json:"bookId" db:"book_id"`
	BorrowDate time.Time `json:"borrowDate" db:"borrow_date"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
}

type BookRef struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BorrowLogRecord is a log joined with its book. Book is nil when the
// book was deleted after the borrow (orphan logs are permitted).
type BorrowLogRecord struct {
	BorrowLog `json:",inline"`
	Book      *BookRef `json:"book"`
}

type BorrowStat struct {
	BookID       int   `json:"bookId" db:"book_id"`
	TotalBorrows int64 `json:"totalBorrows" db:"total_borrows"`
}

type CreateBookRequest struct {
	Title  string `json:"title" validate:"required,notblank"`
	Author string `json:"author" validate:"required,notblank"`
	Stock  *int   `json:"stock" validate:"omitempty,gte=0"`
}

type UpdateBookRequest struct {
	Title  *string `json:"title" validate:"omitempty,notblank"`
	Author *string `json:"author" validate:"omitempty,notblank"`
	Stock  *int    `json:"stock" validate:"omitempty,gte=0"`
}

type BorrowRequest struct {
	BookID    int      `json:"bookId" validate:"required,gt=0"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	UserID    int      `json:"-" validate:"required,gt=0"`
}

type BorrowedBook struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	RemainingStock int    `json:"remainingStock"`
}

type BorrowResult struct {
	BorrowLog BorrowLog    `json:"borrowLog"`
	Book      BorrowedBook `json:"book"`
}

// BorrowEvent is published to kafka after a committed borrow.
type BorrowEvent struct {
	EventUid    string    `json:"eventUid"`
	BorrowLogID int       `json:"borrowLogId"`
	BookID      int       `json:"bookId"`
	UserID      int       `json:"userId"`
	BorrowDate  time.Time `json:"borrowDate"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

type User struct {
	ID       int    `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Role     string `json:"role" db:"role"`
}

type UserCreateRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}
