package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"jobportal/internal/apperr"
	"jobportal/internal/api/middleware"
	"jobportal/internal/auth"
	"jobportal/internal/database"
	"jobportal/internal/uploads"
)

// Client-facing messages. The bad-credentials message is deliberately shared
// by the unknown-email and wrong-password paths so the two responses stay
// byte-identical; the role-mismatch message stays distinct.
const (
	msgMissingFields  = "Something is missing"
	msgEmailTaken     = "User already exists with this email."
	msgBadCredentials = "Incorrect email or password."
	msgRoleMismatch   = "Account doesn't exist with current role."
	msgUserNotFound   = "User not found."
	msgAccountCreated = "Account created successfully."
	msgLoggedOut      = "Logged out successfully."
	msgProfileUpdated = "Profile updated successfully."
)

// resumeFolder is the logical prefix resumes are stored under.
const resumeFolder = "resumes"

// mediaUploader is the slice of the uploads service the handlers need.
type mediaUploader interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, opts uploads.Options) (string, error)
}

// UserHandler serves registration, login, logout and profile updates.
type UserHandler struct {
	db           *gorm.DB
	authService  *auth.AuthService
	uploader     mediaUploader
	logger       *slog.Logger
	cookieDomain string
}

// NewUserHandler constructs the account handler.
func NewUserHandler(db *gorm.DB, authService *auth.AuthService, uploader mediaUploader, logger *slog.Logger, cookieDomain string) *UserHandler {
	return &UserHandler{
		db:           db,
		authService:  authService,
		uploader:     uploader,
		logger:       logger,
		cookieDomain: cookieDomain,
	}
}

// userView is the sanitized user projection. It never carries the password hash.
type userView struct {
	ID          uint             `json:"id"`
	FullName    string           `json:"fullname"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phoneNumber"`
	Role        string           `json:"role"`
	Profile     database.Profile `json:"profile"`
}

func newUserView(user database.User) userView {
	return userView{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Profile:     user.Profile,
	}
}

// Register creates a new account from a multipart form, hashing the password
// and optionally uploading a profile photo.
func (h *UserHandler) Register(c *gin.Context) {
	fullName := c.PostForm("fullname")
	email := c.PostForm("email")
	phoneNumber := c.PostForm("phoneNumber")
	password := c.PostForm("password")
	role := c.PostForm("role")

	if fullName == "" || email == "" || phoneNumber == "" || password == "" || role == "" {
		Fail(c, apperr.Validation(msgMissingFields))
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", email))

	// Pre-check keeps the friendly message; the unique index on email makes
	// the concurrent-registration race lose cleanly below.
	var existing database.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		logger.Info("register conflict: email already taken")
		Fail(c, apperr.Conflict(msgEmailTaken))
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("register lookup: %w", err)))
		return
	}

	photoURL := ""
	if file, err := c.FormFile("file"); err == nil {
		url, err := h.uploader.UploadFile(ctx, file, uploads.Options{ResourceType: uploads.ResourceAuto})
		if err != nil {
			Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("upload profile photo: %w", err)))
			return
		}
		photoURL = url
	}

	hashed, err := h.authService.HashPassword(password)
	if err != nil {
		Fail(c, apperr.Internal(internalErrorMessage, err))
		return
	}

	user := database.User{
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
		Role:         role,
		Profile: database.Profile{
			PhotoURL: photoURL,
		},
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Info("register conflict: email taken in race")
			Fail(c, apperr.Conflict(msgEmailTaken))
			return
		}
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("create user: %w", err)))
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusCreated, gin.H{"message": msgAccountCreated, "success": true})
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

// Login verifies credentials and role, then issues the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Email == "" || req.Password == "" || req.Role == "" {
		Fail(c, apperr.Validation(msgMissingFields))
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", req.Email))

	var user database.User
	if err := h.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("login failed: email not found")
			Fail(c, apperr.Auth(msgBadCredentials))
			return
		}
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("login lookup: %w", err)))
		return
	}

	if !h.authService.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		Fail(c, apperr.Auth(msgBadCredentials))
		return
	}

	if req.Role != user.Role {
		logger.Info("login failed: role mismatch", slog.Uint64("user_id", uint64(user.ID)))
		Fail(c, apperr.RoleMismatch(msgRoleMismatch))
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("generate token: %w", err)))
		return
	}

	h.setSessionCookie(c, token)
	logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome back %s", user.FullName),
		"user":    newUserView(user),
		"success": true,
	})
}

// Logout clears the session cookie unconditionally.
func (h *UserHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut, "success": true})
}

// Me returns the sanitized view of the authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var user database.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, apperr.NotFound(msgUserNotFound))
			return
		}
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("load user: %w", err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserView(user), "success": true})
}

// UpdateProfile merges provided form fields into the stored record and
// optionally attaches an uploaded resume. Omitted (empty) fields keep their
// prior values; an intentional empty-string update is not expressible
// through this form contract.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	var user database.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, apperr.NotFound(msgUserNotFound))
			return
		}
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("load user: %w", err)))
		return
	}

	if skills := c.PostForm("skills"); skills != "" {
		// Wholesale replacement, order preserved. No merge with the stored list.
		user.Profile.Skills = datatypes.JSONSlice[string](strings.Split(skills, ","))
	}

	if v := c.PostForm("fullname"); v != "" {
		user.FullName = v
	}
	if v := c.PostForm("email"); v != "" {
		user.Email = v
	}
	if v := c.PostForm("phoneNumber"); v != "" {
		user.PhoneNumber = v
	}
	if v := c.PostForm("bio"); v != "" {
		user.Profile.Bio = v
	}

	if file, err := c.FormFile("file"); err == nil {
		// Resumes are stored raw so the served URL carries the document path.
		url, err := h.uploader.UploadFile(ctx, file, uploads.Options{
			ResourceType: uploads.ResourceRaw,
			Folder:       resumeFolder,
		})
		if err != nil {
			Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("upload resume: %w", err)))
			return
		}
		user.Profile.ResumeURL = url
		user.Profile.ResumeOriginalName = file.Filename
	}

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		Fail(c, apperr.Internal(internalErrorMessage, fmt.Errorf("save user: %w", err)))
		return
	}

	logger.Info("profile updated")
	c.JSON(http.StatusOK, gin.H{
		"message": msgProfileUpdated,
		"user":    newUserView(user),
		"success": true,
	})
}

func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		MaxAge:   int(h.authService.TokenTTL().Seconds()),
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Domain:   h.cookieDomain,
	})
}

func (h *UserHandler) clearSessionCookie(c *gin.Context) {
	// MaxAge -1 serializes as Max-Age=0, which is what deletes the cookie.
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Domain:   h.cookieDomain,
	})
}

func (h *UserHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *UserHandler) isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}
