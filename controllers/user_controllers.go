package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

var errInvalidCredentials = errors.New("invalid credentials")

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register lets an admin open a staff account. Admin accounts are seeded at
// start-up.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Role:     models.RoleStaff,
	}

	var count int64
	if err := uc.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.ErrorLogger.Errorf("Failed to create user: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	utils.InfoLogger.WithField("email", user.Email).Info("New staff user registered")
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login user -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := uc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	utils.InfoLogger.WithField("email", user.Email).Info("Login successful")
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
	})
}

// Logout revokes the bearer token until it would have expired anyway.
func (uc *UserController) Logout(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := c.Get(middlewares.CtxUserID)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID.(uint)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("id").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
