package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/validator"
	"github.com/teamkick/teamkick/utils"
)

// UserController handles the superuser user-management panel.
type UserController struct {
	repo UserRepository
}

// NewUserController creates a new user controller
func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required,max=100"`
	Role         string `json:"role" binding:"omitempty,oneof=superuser admin coach player"`
	Email        string `json:"email" binding:"omitempty,email"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
}

type UpdateUserRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=superuser admin coach player"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Position     *string `json:"position"`
	JerseyNumber *int    `json:"jersey_number" binding:"omitempty,gte=0,lte=99"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
}

// ListUsers godoc
// @Summary List users
// @Description Returns a paginated, searchable list of platform users.
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Username or full name search"
// @Success 200 {object} responses.PaginatedResponse{data=[]User}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := uc.repo.List(page, limit, c.Query("search"))
	if err != nil {
		responses.InternalServerError(c, "Failed to list users")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", users, total, page, limit)
}

// CreateUser godoc
// @Summary Create a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User data"
// @Success 201 {object} responses.SuccessResponse{data=User}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if _, err := uc.repo.GetByUsername(req.Username); err == nil {
		responses.Conflict(c, "Username already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.InternalServerError(c, "Failed to check username")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	role := req.Role
	if role == "" {
		role = RolePlayer
	}

	u := User{
		Username:     req.Username,
		Password:     hashed,
		FullName:     req.FullName,
		Role:         role,
		Email:        req.Email,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	}
	if err := uc.repo.Create(&u); err != nil {
		responses.InternalServerError(c, "Failed to create user")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User created", u)
}

// GetUser godoc
// @Summary Get a user by id
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}

	u, err := uc.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", u)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=User}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	u, err := uc.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.JerseyNumber != nil {
		u.JerseyNumber = *req.JerseyNumber
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			responses.InternalServerError(c, "Failed to hash password")
			return
		}
		u.Password = hashed
	}

	if err := uc.repo.Update(u); err != nil {
		responses.InternalServerError(c, "Failed to update user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User updated", u)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user id")
		return
	}

	if _, err := uc.repo.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}

	if err := uc.repo.Delete(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User deleted", nil)
}
