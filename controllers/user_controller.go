package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// SignupRequest represents the signup request body
type SignupRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	UserName  string `json:"user_name" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Signup registers a new account under the role named in the path.
func Signup(c *gin.Context) {
	utils.LogInfo("Signup called")

	role := models.Role(c.Param("rol_type"))
	if !role.Valid() {
		utils.LogError("Signup with unknown role: %s", c.Param("rol_type"))
		utils.BadRequest(c, "Please contact the administrator", nil)
		return
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)
	req.UserName = utils.SanitizeString(req.UserName)

	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidateUsername(req.UserName); !valid {
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}

	var rol models.Rol
	if err := config.DB.Where("type = ?", role).First(&rol).Error; err != nil {
		utils.LogError("Role %s missing from rol table: %v", role, err)
		utils.BadRequest(c, "Please contact the administrator", nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogInfo("Signup rejected, email already registered: %s", req.Email)
		utils.BadRequest(c, "User already exists", nil)
		return
	}
	if err := config.DB.Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		utils.LogInfo("Signup rejected, username already taken: %s", req.UserName)
		utils.BadRequest(c, "Username already taken", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create user", err.Error())
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  hash,
		UserName:  req.UserName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RolID:     rol.ID,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create user", err.Error())
		return
	}

	// Best effort, signup never fails because mail is down
	if err := utils.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		utils.LogError("Failed to send welcome email to %s: %v", user.Email, err)
	}

	utils.LogInfo("User created successfully: %s (%s)", user.UserName, role)
	utils.Created(c, "User created successfully", gin.H{
		"user": gin.H{
			"id":         user.ID,
			"user_name":  user.UserName,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"rol":        role,
		},
	})
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates credentials and issues a JWT.
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)

	var user models.User
	if err := config.DB.Preload("Rol").Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login failed, user not found: %s", req.Email)
		utils.NotFound(c, "User not found")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login failed, wrong password for: %s", req.Email)
		utils.Unauthorized(c, "Incorrect password")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user":  userResponse(&user),
	})
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"user_name":  u.UserName,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"rol_id":     u.RolID,
		"rol":        u.Rol.Type,
		"img":        u.Img,
	}
}

// Welcome returns the authenticated user's profile
func Welcome(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	utils.Success(c, "Welcome", gin.H{
		"user": userResponse(&user),
	})
}

// GetUsers returns all registered users
func GetUsers(c *gin.Context) {
	utils.LogInfo("GetUsers called")

	var users []models.User
	if err := config.DB.Preload("Rol").Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch users: %v", err)
		utils.InternalServerError(c, "Failed to fetch users", err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for i := range users {
		list = append(list, userResponse(&users[i]))
	}

	utils.Success(c, "Users retrieved successfully", gin.H{
		"users": list,
	})
}
