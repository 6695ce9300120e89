package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/library-system/library/internal/errs"
	"github.com/Astemirdum/library-system/library/internal/handler"
	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/Astemirdum/library-system/pkg/auth"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/library-system/library/internal/handler/mocks"
)

var testAuthCfg = auth.Config{Secret: "test-secret", TTL: time.Hour}

func newTestRouter(t *testing.T) (*echo.Echo, *service_mocks.MockLibraryService, *service_mocks.MockAuthService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	librarySvc := service_mocks.NewMockLibraryService(c)
	authSvc := service_mocks.NewMockAuthService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(librarySvc, authSvc, testAuthCfg, log)
	return h.NewRouter(), librarySvc, authSvc
}

func ptrF(f float64) *float64 { return &f }
func ptrS(s string) *string   { return &s }
func ptrI(i int) *int         { return &i }

func TestHandler_Borrow(t *testing.T) {
	t.Parallel()
	borrowDate := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		body         string
		headers      map[string]string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"bookId":3,"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "7",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), model.BorrowRequest{
						BookID:    3,
						Latitude:  ptrF(1.5),
						Longitude: ptrF(2.5),
						UserID:    7,
					}).
					Return(model.BorrowResult{
						BorrowLog: model.BorrowLog{
							ID:         11,
							UserID:     7,
							BookID:     3,
							BorrowDate: borrowDate,
							Latitude:   1.5,
							Longitude:  2.5,
						},
						Book: model.BorrowedBook{
							ID:             3,
							Title:          "1984",
							Author:         "George Orwell",
							RemainingStock: 0,
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"success":true,"message":"Book borrowed successfully","data":{"borrowLog":{"id":11,"userId":7,"bookId":3,"borrowDate":"2026-01-02T03:04:05Z","latitude":1.5,"longitude":2.5},"book":{"id":3,"title":"1984","author":"George Orwell","remainingStock":0}}}`,
			},
		},
		{
			name: "err. out of stock",
			body: `{"bookId":3,"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "7",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), gomock.Any()).
					Return(model.BorrowResult{}, errs.ErrOutOfStock)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Book is out of stock"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"bookId":999,"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "7",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					Borrow(gomock.Any(), gomock.Any()).
					Return(model.BorrowResult{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"error":"Book not found"}`,
			},
		},
		{
			name: "err. missing bookId",
			body: `{"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "7",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'BorrowRequest.BookID' Error:Field validation for 'BookID' failed on the 'required' tag"]}`,
			},
		},
		{
			name: "err. missing geolocation",
			body: `{"bookId":3}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "7",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'BorrowRequest.Latitude' Error:Field validation for 'Latitude' failed on the 'required' tag\nKey: 'BorrowRequest.Longitude' Error:Field validation for 'Longitude' failed on the 'required' tag"]}`,
			},
		},
		{
			name:         "err. no identity",
			body:         `{"bookId":3,"latitude":1.5,"longitude":2.5}`,
			headers:      map[string]string{},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"success":false,"error":"Access denied. User authentication required."}`,
			},
		},
		{
			name: "err. admin cannot borrow",
			body: `{"bookId":3,"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleAdmin,
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"success":false,"error":"Access denied. User authentication required."}`,
			},
		},
		{
			name: "err. non-numeric user id",
			body: `{"bookId":3,"latitude":1.5,"longitude":2.5}`,
			headers: map[string]string{
				auth.XUserRoleHeader: auth.RoleUser,
				auth.XUserIDHeader:   "abc",
			},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"success":false,"error":"Access denied. User authentication required."}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/borrow", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		body         string
		headers      map[string]string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "ok",
			body:    `{"title":"  Dune ","author":" Frank Herbert ","stock":2}`,
			headers: map[string]string{auth.XUserRoleHeader: auth.RoleAdmin},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					CreateBook(gomock.Any(), model.CreateBookRequest{
						Title:  "  Dune ",
						Author: " Frank Herbert ",
						Stock:  ptrI(2),
					}).
					Return(model.Book{
						ID: 6, Title: "Dune", Author: "Frank Herbert", Stock: 2,
						CreatedAt: ts, UpdatedAt: ts,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"success":true,"message":"Book created successfully","data":{"id":6,"title":"Dune","author":"Frank Herbert","stock":2,"createdAt":"2026-01-02T03:04:05Z","updatedAt":"2026-01-02T03:04:05Z"}}`,
			},
		},
		{
			name:         "err. blank title",
			body:         `{"title":"   ","author":"X"}`,
			headers:      map[string]string{auth.XUserRoleHeader: auth.RoleAdmin},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'CreateBookRequest.Title' Error:Field validation for 'Title' failed on the 'notblank' tag"]}`,
			},
		},
		{
			name:         "err. negative stock",
			body:         `{"title":"Dune","author":"Frank Herbert","stock":-1}`,
			headers:      map[string]string{auth.XUserRoleHeader: auth.RoleAdmin},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'CreateBookRequest.Stock' Error:Field validation for 'Stock' failed on the 'gte' tag"]}`,
			},
		},
		{
			name:         "err. not admin",
			body:         `{"title":"Dune","author":"Frank Herbert"}`,
			headers:      map[string]string{auth.XUserRoleHeader: auth.RoleUser, auth.XUserIDHeader: "7"},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"success":false,"error":"Access denied. Admin only."}`,
			},
		},
		{
			name:    "err. internal",
			body:    `{"title":"Dune","author":"Frank Herbert"}`,
			headers: map[string]string{auth.XUserRoleHeader: auth.RoleAdmin},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					CreateBook(gomock.Any(), gomock.Any()).
					Return(model.Book{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"success":false,"message":"db internal","error":"Failed to create book"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBook_BearerToken(t *testing.T) {
	t.Parallel()
	e, librarySvc, _ := newTestRouter(t)
	librarySvc.EXPECT().
		CreateBook(gomock.Any(), gomock.Any()).
		Return(model.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}, nil)

	token, _, err := auth.NewToken(testAuthCfg, 1, auth.RoleAdmin)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(`{"title":"Dune","author":"Frank Herbert"}`))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	r.Header.Set(auth.AuthorizationHeader, "Bearer "+token)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		id           string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			id:   "3",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					GetBook(gomock.Any(), 3).
					Return(model.Book{
						ID: 3, Title: "1984", Author: "George Orwell", Stock: 7,
						CreatedAt: ts, UpdatedAt: ts,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"data":{"id":3,"title":"1984","author":"George Orwell","stock":7,"createdAt":"2026-01-02T03:04:05Z","updatedAt":"2026-01-02T03:04:05Z"}}`,
			},
		},
		{
			name: "err. not found",
			id:   "999",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					GetBook(gomock.Any(), 999).
					Return(model.Book{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"error":"Book not found"}`,
			},
		},
		{
			name:         "err. bad id",
			id:           "abc",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["id must be a positive integer"]}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/books/%s", tt.id), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_UpdateBook(t *testing.T) {
	t.Parallel()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		id           string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok. partial patch",
			id:   "3",
			body: `{"stock":9}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					UpdateBook(gomock.Any(), 3, model.UpdateBookRequest{Stock: ptrI(9)}).
					Return(model.Book{
						ID: 3, Title: "1984", Author: "George Orwell", Stock: 9,
						CreatedAt: ts, UpdatedAt: ts,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"Book updated successfully","data":{"id":3,"title":"1984","author":"George Orwell","stock":9,"createdAt":"2026-01-02T03:04:05Z","updatedAt":"2026-01-02T03:04:05Z"}}`,
			},
		},
		{
			name:         "err. blank author",
			id:           "3",
			body:         `{"author":"  "}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'UpdateBookRequest.Author' Error:Field validation for 'Author' failed on the 'notblank' tag"]}`,
			},
		},
		{
			name: "err. not found",
			id:   "999",
			body: `{"title":"X"}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					UpdateBook(gomock.Any(), 999, model.UpdateBookRequest{Title: ptrS("X")}).
					Return(model.Book{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"error":"Book not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/books/%s", tt.id), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XUserRoleHeader, auth.RoleAdmin)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		id           string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			id:   "3",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteBook(gomock.Any(), 3).Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"Book deleted successfully"}`,
			},
		},
		{
			name: "err. not found",
			id:   "999",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteBook(gomock.Any(), 999).Return(errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"error":"Book not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/books/%s", tt.id), http.NoBody)
			r.Header.Set(auth.XUserRoleHeader, auth.RoleAdmin)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBorrowLogs(t *testing.T) {
	t.Parallel()
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := time.Date(2026, 1, 3, 3, 4, 5, 0, time.UTC)
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	var tests = []struct {
		name         string
		headers      map[string]string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:    "ok. orphan log keeps null book",
			headers: map[string]string{auth.XUserRoleHeader: auth.RoleAdmin},
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					ListBorrowLogs(gomock.Any()).
					Return([]model.BorrowLogRecord{
						{
							BorrowLog: model.BorrowLog{ID: 2, UserID: 7, BookID: 3, BorrowDate: second, Latitude: 1.5, Longitude: 2.5},
							Book:      &model.BookRef{ID: 3, Title: "1984", Author: "George Orwell"},
						},
						{
							BorrowLog: model.BorrowLog{ID: 1, UserID: 8, BookID: 42, BorrowDate: first, Latitude: 3.5, Longitude: 4.5},
							Book:      nil,
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"data":[{"id":2,"userId":7,"bookId":3,"borrowDate":"2026-01-03T03:04:05Z","latitude":1.5,"longitude":2.5,"book":{"id":3,"title":"1984","author":"George Orwell"}},{"id":1,"userId":8,"bookId":42,"borrowDate":"2026-01-02T03:04:05Z","latitude":3.5,"longitude":4.5,"book":null}]}`,
			},
		},
		{
			name:         "err. not admin",
			headers:      map[string]string{auth.XUserRoleHeader: auth.RoleUser, auth.XUserIDHeader: "7"},
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"success":false,"error":"Access denied. Admin only."}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, librarySvc, _ := newTestRouter(t)
			tt.mockBehavior(librarySvc)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/borrow/logs", http.NoBody)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBorrowStats(t *testing.T) {
	t.Parallel()
	e, librarySvc, _ := newTestRouter(t)
	librarySvc.EXPECT().
		BorrowStats(gomock.Any()).
		Return([]model.BorrowStat{{BookID: 3, TotalBorrows: 12}, {BookID: 1, TotalBorrows: 4}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/borrow/stats", http.NoBody)
	r.Header.Set(auth.XUserRoleHeader, auth.RoleAdmin)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"success":true,"data":[{"bookId":3,"totalBorrows":12},{"bookId":1,"totalBorrows":4}]}`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Authorize(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAuthService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		contains     string
	}{
		{
			name: "ok",
			body: `{"username":"max","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					GetUser(gomock.Any(), "max").
					Return(model.User{ID: 1, Username: "max", Password: "secret123", Role: auth.RoleAdmin}, nil)
			},
			expectedCode: http.StatusOK,
			contains:     `"access_token"`,
		},
		{
			name: "err. wrong password",
			body: `{"username":"max","password":"nope"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					GetUser(gomock.Any(), "max").
					Return(model.User{ID: 1, Username: "max", Password: "secret123", Role: auth.RoleAdmin}, nil)
			},
			expectedCode: http.StatusUnauthorized,
			contains:     `"Invalid credentials"`,
		},
		{
			name: "err. unknown user",
			body: `{"username":"ghost","password":"secret123"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					GetUser(gomock.Any(), "ghost").
					Return(model.User{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusUnauthorized,
			contains:     `"Invalid credentials"`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, authSvc := newTestRouter(t)
			tt.mockBehavior(authSvc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockAuthService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"username":"max","password":"secret123","role":"admin"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					RegisterUser(gomock.Any(), model.UserCreateRequest{
						Username: "max", Password: "secret123", Role: auth.RoleAdmin,
					}).
					Return(nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"success":true,"message":"User registered successfully"}`,
		},
		{
			name: "err. username taken",
			body: `{"username":"max","password":"secret123","role":"user"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					RegisterUser(gomock.Any(), gomock.Any()).
					Return(errs.ErrUserExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Username is taken"}`,
		},
		{
			name:         "err. bad role",
			body:         `{"username":"max","password":"secret123","role":"root"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Validation error","details":["Key: 'UserCreateRequest.Role' Error:Field validation for 'Role' failed on the 'oneof' tag"]}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _, authSvc := newTestRouter(t)
			tt.mockBehavior(authSvc)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
