package api

import (
	"net/http"

	"finance-tracker/apperrors"
	"finance-tracker/auth"
	"finance-tracker/db"
	"finance-tracker/logging"
	"finance-tracker/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage db.Store
	tokens  *auth.TokenManager
}

func NewHandler(storage db.Store, jwtSecret string) *Handler {
	return &Handler{
		storage: storage,
		tokens:  auth.NewTokenManager(jwtSecret),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user with a bcrypt-hashed password. Usernames are unique and matched case-sensitively.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Username and password"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var credentials models.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := credentials.Validate(); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	existing, err := h.storage.GetUserByUsername(credentials.Username)
	if err != nil {
		logging.Logger.Errorf("failed to look up user %q: %v", credentials.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashed, err := auth.HashPassword(credentials.Password)
	if err != nil {
		logging.Logger.Errorf("failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := h.storage.CreateUser(credentials.Username, hashed)
	if err != nil {
		logging.Logger.Errorf("failed to create user %q: %v", credentials.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		ID:      id,
		Message: "User registered successfully",
	})
}

// Login godoc
// @Summary Authenticate and receive a bearer token
// @Description Unknown usernames and wrong passwords are rejected identically. The token is valid for one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Username and password"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var credentials models.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := credentials.Validate(); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	user, err := h.storage.GetUserByUsername(credentials.Username)
	if err != nil || user == nil {
		if err != nil {
			logging.Logger.Errorf("failed to look up user %q: %v", credentials.Username, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	if !auth.ComparePasswords(user.PasswordHash, credentials.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logging.Logger.Errorf("failed to issue token for user %d: %v", user.ID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
