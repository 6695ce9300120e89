package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	md "github.com/Astemirdum/library-system/pkg/middleware"

	"github.com/Astemirdum/library-system/library/internal/errs"
	"github.com/Astemirdum/library-system/library/internal/model"
	"github.com/Astemirdum/library-system/pkg/auth"
	"github.com/Astemirdum/library-system/pkg/validate"
	_ "github.com/Astemirdum/library-system/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	librarySvc LibraryService
	authSvc    AuthService
	authCfg    auth.Config
	log        *zap.Logger
}

func New(librarySvc LibraryService, authSvc AuthService, authCfg auth.Config, log *zap.Logger) *Handler {
	h := &Handler{
		librarySvc: librarySvc,
		authSvc:    authSvc,
		authCfg:    authCfg,
		log:        log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/", h.Index)
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	isAdmin := auth.IsAdmin(h.authCfg)
	isUser := auth.IsUser(h.authCfg)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook, isAdmin)
	api.PUT("/books/:id", h.UpdateBook, isAdmin)
	api.DELETE("/books/:id", h.DeleteBook, isAdmin)

	api.POST("/borrow", h.Borrow, isUser)
	api.GET("/borrow/logs", h.GetBorrowLogs, isAdmin)
	api.GET("/borrow/stats", h.GetBorrowStats, isAdmin)

	api.POST("/auth/register", h.Register)
	api.POST("/auth/token", h.Authorize)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Library System API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"books": echo.Map{
				"getAll":  "GET /api/v1/books",
				"getById": "GET /api/v1/books/:id",
				"create":  "POST /api/v1/books (Admin)",
				"update":  "PUT /api/v1/books/:id (Admin)",
				"delete":  "DELETE /api/v1/books/:id (Admin)",
			},
			"borrow": echo.Map{
				"borrowBook": "POST /api/v1/borrow (User)",
				"logs":       "GET /api/v1/borrow/logs (Admin)",
				"stats":      "GET /api/v1/borrow/stats (Admin)",
			},
			"auth": echo.Map{
				"register": "POST /api/v1/auth/register",
				"token":    "POST /api/v1/auth/token",
			},
		},
	})
}

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.librarySvc.ListBooks(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch books")
	}
	return respondOK(c, books, "")
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, err, "Failed to fetch book")
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch book")
	}
	return respondOK(c, book, "")
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err, "Failed to create book")
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, err, "Failed to create book")
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Failed to create book")
	}
	return respondCreated(c, book, "Book created successfully")
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, err, "Failed to update book")
	}
	var patch model.UpdateBookRequest
	if err := c.Bind(&patch); err != nil {
		return respondError(c, err, "Failed to update book")
	}
	if err := c.Validate(patch); err != nil {
		return respondError(c, err, "Failed to update book")
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err, "Failed to update book")
	}
	return respondOK(c, book, "Book updated successfully")
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return respondError(c, err, "Failed to delete book")
	}
	if err := h.librarySvc.DeleteBook(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete book")
	}
	return respondOK(c, nil, "Book deleted successfully")
}

func (h *Handler) Borrow(c echo.Context) error {
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err, "Failed to borrow book")
	}
	id, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusForbidden, model.Response{
			Success: false,
			Error:   "Access denied. User authentication required.",
		})
	}
	req.UserID = id.UserID

	if err := c.Validate(req); err != nil {
		return respondError(c, err, "Failed to borrow book")
	}
	result, err := h.librarySvc.Borrow(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Failed to borrow book")
	}
	return respondCreated(c, result, "Book borrowed successfully")
}

func (h *Handler) GetBorrowLogs(c echo.Context) error {
	logs, err := h.librarySvc.ListBorrowLogs(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch borrow logs")
	}
	return respondOK(c, logs, "")
}

func (h *Handler) GetBorrowStats(c echo.Context) error {
	stats, err := h.librarySvc.BorrowStats(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch borrow stats")
	}
	return respondOK(c, stats, "")
}

func (h *Handler) Register(c echo.Context) error {
	var req model.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, err, "Failed to register user")
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, err, "Failed to register user")
	}
	if err := h.authSvc.RegisterUser(c.Request().Context(), req); err != nil {
		if errors.Is(err, errs.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, model.Response{
				Success: false,
				Error:   "Username is taken",
			})
		}
		return respondError(c, err, "Failed to register user")
	}
	return respondCreated(c, nil, "User registered successfully")
}

func (h *Handler) Authorize(c echo.Context) error {
	var credentials model.AuthRequest
	if err := c.Bind(&credentials); err != nil {
		return respondError(c, err, "Failed to authorize")
	}
	if err := c.Validate(credentials); err != nil {
		return respondError(c, err, "Failed to authorize")
	}

	user, err := h.authSvc.GetUser(c.Request().Context(), credentials.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, model.Response{
				Success: false,
				Error:   "Invalid credentials",
			})
		}
		return respondError(c, err, "Failed to authorize")
	}
	if user.Password != credentials.Password {
		return c.JSON(http.StatusUnauthorized, model.Response{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	token, expiresAt, err := auth.NewToken(h.authCfg, user.ID, user.Role)
	if err != nil {
		return respondError(c, err, "Failed to authorize")
	}
	return respondOK(c, model.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
	}, "")
}

func bookID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errs.Validation("id must be a positive integer")
	}
	return id, nil
}

func respondOK(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, model.Response{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, model.Response{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, err error, fallback string) error {
	var (
		vErr    *errs.ValidationError
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "Validation error",
			Details: vErr.Details,
		})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, model.Response{
			Success: false,
			Error:   "Book not found",
		})
	case errors.Is(err, errs.ErrOutOfStock):
		return c.JSON(http.StatusBadRequest, model.Response{
			Success: false,
			Error:   "Book is out of stock",
		})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, model.Response{
			Success: false,
			Error:   "Validation error",
			Details: []string{fmt.Sprintf("%v", httpErr.Message)},
		})
	default:
		return c.JSON(http.StatusInternalServerError, model.Response{
			Success: false,
			Error:   fallback,
			Message: err.Error(),
		})
	}
}
