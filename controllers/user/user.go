package userController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookapi/middleware"
	"bookapi/models"
	"bookapi/utils"
)

// Controller serves registration, login and profile endpoints.
type Controller struct {
	db        *gorm.DB
	jwtKey    string
	saltRound int
}

func New(db *gorm.DB, jwtKey string, saltRound int) *Controller {
	return &Controller{db: db, jwtKey: jwtKey, saltRound: saltRound}
}

type authResponse struct {
	models.UserSummary
	Token string `json:"token"`
}

func (ctrl *Controller) authResponse(user *models.User) (authResponse, error) {
	token, err := middleware.GenerateJWT(user.ID, user.IsAdmin, ctrl.jwtKey)
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{UserSummary: user.Summary(), Token: token}, nil
}

// Register creates a new user account and logs it in.
func (ctrl *Controller) Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	if err := ctrl.db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctrl.saltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return err
	}

	user := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}

	if err := ctrl.db.Create(&user).Error; err != nil {
		// Concurrent registrations race past the pre-check; the unique
		// email column reports it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, "User already exists")
		}
		return err
	}

	resp, err := ctrl.authResponse(&user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login authenticates by email and password.
func (ctrl *Controller) Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	var user models.User
	if err := ctrl.db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	resp, err := ctrl.authResponse(&user)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetProfile returns a user summary.
func (ctrl *Controller) GetProfile(c *fiber.Ctx) error {
	userID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	var user models.User
	if err := ctrl.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(user.Summary())
}

// UpdateProfile applies any subset of name/email/password and issues a fresh
// token.
func (ctrl *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	reqData := new(struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	var user models.User
	if err := ctrl.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Email != "" {
		user.Email = reqData.Email
	}
	if reqData.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctrl.saltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return err
		}
		user.Password = string(hashedPassword)
	}

	if err := ctrl.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, "Email is already registered!")
		}
		return err
	}

	resp, err := ctrl.authResponse(&user)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
