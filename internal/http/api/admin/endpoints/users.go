package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/model"
)

type createUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	DisplayName string  `json:"display_name" binding:"required"`
	FatherName  string  `json:"father_name" binding:"required"`
	CNIC        *string `json:"cnic"`
	Address     *string `json:"address"`
}

type userResponse struct {
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

func toUserResponse(u model.User) userResponse {
	out := userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		FatherName:  u.FatherName,
		CNIC:        u.CNIC,
		Address:     u.Address,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.FirstLoginAt != nil {
		s := u.FirstLoginAt.Format(time.RFC3339)
		out.FirstLoginAt = &s
	}
	return out
}

type UserController struct {
	store db.Store
}

func NewUserController(store db.Store) *UserController {
	return &UserController{store: store}
}

func RegisterUserRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewUserController(store)

	r.GET("/users", ctl.listUsers)
	r.POST("/users", ctl.createUser)
	r.DELETE("/users/:id", ctl.deleteUser)
}

func (u *UserController) listUsers(ctx *gin.Context) {
	all, err := u.store.ListUsers()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	out := make([]userResponse, len(all))
	for i, row := range all {
		out[i] = toUserResponse(row)
	}
	ctx.JSON(http.StatusOK, out)
}

func (u *UserController) createUser(ctx *gin.Context) {
	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if existing, _ := u.store.GetUserByEmail(req.Email); existing != nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hashed, err := middleware.HashPassword(req.Password)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	userID, err := u.store.CreateUser(req.Email, hashed, "user", &req.DisplayName, &req.FatherName, req.CNIC, req.Address)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"user_id": userID, "email": req.Email})
}

func (u *UserController) deleteUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	// an admin removing their own account would lock the surface
	if current, ok := middleware.GetCurrentUser(ctx); ok && current.ID == id {
		ctx.JSON(http.StatusConflict, gin.H{"error": "cannot delete the signed-in admin"})
		return
	}

	if err := u.store.DeleteUser(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
