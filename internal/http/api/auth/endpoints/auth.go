package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

// body for registering
type signupRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	DisplayName *string `json:"display_name"`
	FatherName  *string `json:"father_name"`
}

// body for logging in
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	FatherName  *string `json:"father_name"`
	CNIC        *string `json:"cnic"`
	Address     *string `json:"address"`
}

// returned for profile endpoints
type profileResponse struct {
	ID           int     `json:"id"`
	Email        string  `json:"email"`
	DisplayName  *string `json:"display_name"`
	FatherName   *string `json:"father_name"`
	CNIC         *string `json:"cnic"`
	Address      *string `json:"address"`
	Role         string  `json:"role"`
	FirstLoginAt *string `json:"first_login_at"`
	CreatedAt    string  `json:"created_at"`
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
}

func accountManagementController(secret string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

// mounts public auth routes
func RegisterAuthRoutes(r gin.IRoutes, jwtSecret string, store db.Store) {
	ctl := accountManagementController(jwtSecret, store)

	r.POST("/auth/signup", ctl.userSignup)
	r.POST("/auth/login", ctl.userLogin)
}

// mounts profile routes (behind JWTMiddleware)
func RegisterProfileRoutes(r gin.IRoutes, jwtSecret string, store db.Store) {
	ctl := accountManagementController(jwtSecret, store)

	r.GET("/auth/current_profile", ctl.getCurrentProfile)
	r.PATCH("/auth/current_profile", ctl.updateCurrentProfile)
}

// POST /api/auth/signup
func (a *AccountManager) userSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, _ := a.store.GetUserByEmail(req.Email); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	userID, err := a.store.CreateUser(req.Email, hashed, "user", req.DisplayName, req.FatherName, nil, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// POST /api/auth/login
func (a *AccountManager) userLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.store.GetUserByEmail(req.Email)
	if err != nil || !middleware.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	// The first successful login starts missed-prayer tracking for this user.
	if user.FirstLoginAt == nil {
		if err := a.store.MarkFirstLogin(user.ID, prayer.Now()); err != nil {
			log.Error().Err(err).Int("user_id", user.ID).Msg("could not stamp first login")
		}
	}

	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GET /api/auth/current_profile
func (a *AccountManager) getCurrentProfile(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var firstLogin *string
	if currentUser.FirstLoginAt != nil {
		s := currentUser.FirstLoginAt.Format(time.RFC3339)
		firstLogin = &s
	}
	c.JSON(http.StatusOK, profileResponse{
		ID:           currentUser.ID,
		Email:        currentUser.Email,
		DisplayName:  currentUser.DisplayName,
		FatherName:   currentUser.FatherName,
		CNIC:         currentUser.CNIC,
		Address:      currentUser.Address,
		Role:         currentUser.Role,
		FirstLoginAt: firstLogin,
		CreatedAt:    currentUser.CreatedAt.Format(time.RFC3339),
	})
}

// PATCH /api/auth/current_profile
func (a *AccountManager) updateCurrentProfile(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	displayName := currentUser.DisplayName
	if req.DisplayName != nil {
		displayName = req.DisplayName
	}
	fatherName := currentUser.FatherName
	if req.FatherName != nil {
		fatherName = req.FatherName
	}
	cnic := currentUser.CNIC
	if req.CNIC != nil {
		cnic = req.CNIC
	}
	address := currentUser.Address
	if req.Address != nil {
		address = req.Address
	}

	if err := a.store.UpdateUserProfile(currentUser.ID, displayName, fatherName, cnic, address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
