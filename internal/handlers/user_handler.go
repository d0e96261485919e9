package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financas/internal/models"
	"financas/internal/services"
)

// UserHandler handles user administration.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest represents the request payload for creating a user.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required,min=1,max=80"`
	Name     string          `json:"name" binding:"max=120"`
	Password string          `json:"password" binding:"required,min=6,max=128"`
	Role     models.UserRole `json:"role" binding:"omitempty,user_role"`
}

// GetUsers lists all users.
// @Summary     List users
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} UserResponse "Users"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// CreateUser registers a new user.
// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} UserResponse "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     409 {object} ErrorResponse "Username taken"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Name, req.Password, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "CREATE_USER", "user", user.ID, c.ClientIP(),
		map[string]interface{}{"username": user.Username, "role": user.Role})

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}
