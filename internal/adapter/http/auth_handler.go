package http

import (
	"errors"
	"net/http"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
	"github.com/dzmitrysafronau/shop-project/internal/security"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	register *usecase.Register
	users    usecase.UserRepo
	hasher   *security.BcryptHasher
	tokens   *security.TokenService
}

func NewAuthHandler(register *usecase.Register, users usecase.UserRepo, hasher *security.BcryptHasher, tokens *security.TokenService) *AuthHandler {
	return &AuthHandler{register: register, users: users, hasher: hasher, tokens: tokens}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}
	u, err := h.register.Execute(c.Request.Context(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}

	u, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeErrorKind(c, domain.KindNotAuthenticated, "No active account found with the given credentials")
			return
		}
		writeError(c, domain.WrapInternal(err))
		return
	}
	if !h.hasher.Compare(u.PasswordHash, req.Password) {
		writeErrorKind(c, domain.KindNotAuthenticated, "No active account found with the given credentials")
		return
	}

	access, refresh, err := h.tokens.IssuePair(security.Identity{
		UserID:   u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	})
	if err != nil {
		writeError(c, domain.WrapInternal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		writeErrorKind(c, domain.KindValidation, "Malformed request body")
		return
	}
	ident, err := h.tokens.Verify(req.Refresh, security.TokenRefresh)
	if err != nil {
		writeErrorKind(c, domain.KindNotAuthenticated, "Token is invalid or expired")
		return
	}
	access, err := h.tokens.IssueAccess(ident)
	if err != nil {
		writeError(c, domain.WrapInternal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
