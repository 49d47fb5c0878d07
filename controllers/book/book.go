package bookController

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bookapi/models"
	"bookapi/utils"
)

// Controller serves the book catalog endpoints.
type Controller struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// GetBooks lists the catalog, optionally filtered by a case-insensitive
// substring match on the title.
func (ctrl *Controller) GetBooks(c *fiber.Ctx) error {
	query := ctrl.db.Model(&models.Book{})

	if keyword := c.Query("keyword"); keyword != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}

	books := []models.Book{}
	if err := query.Find(&books).Error; err != nil {
		return err
	}

	return c.JSON(books)
}

// GetFeaturedBooks returns the whole catalog when it holds at most 10 books,
// otherwise 10 books sampled uniformly at random. The sample is fresh on
// every call.
func (ctrl *Controller) GetFeaturedBooks(c *fiber.Ctx) error {
	var total int64
	if err := ctrl.db.Model(&models.Book{}).Count(&total).Error; err != nil {
		return err
	}

	books := []models.Book{}
	query := ctrl.db
	if total > 10 {
		query = query.Order("RANDOM()").Limit(10)
	}
	if err := query.Find(&books).Error; err != nil {
		return err
	}

	return c.JSON(books)
}

func (ctrl *Controller) GetBookByID(c *fiber.Ctx) error {
	bookID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book ID")
	}

	var book models.Book
	if err := ctrl.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	return c.JSON(book)
}

func (ctrl *Controller) CreateBook(c *fiber.Ctx) error {
	reqData := new(struct {
		Title         string `json:"title"`
		Author        string `json:"author"`
		Description   string `json:"description"`
		PublishedYear int    `json:"publishedYear"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	book := models.Book{
		Title:         reqData.Title,
		Author:        reqData.Author,
		Description:   reqData.Description,
		PublishedYear: reqData.PublishedYear,
	}

	if err := ctrl.db.Create(&book).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}

// UpdateBook applies any subset of book fields; absent fields keep their
// current values.
func (ctrl *Controller) UpdateBook(c *fiber.Ctx) error {
	bookID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book ID")
	}

	reqData := new(struct {
		Title         string `json:"title"`
		Author        string `json:"author"`
		Description   string `json:"description"`
		PublishedYear int    `json:"publishedYear"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	var book models.Book
	if err := ctrl.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	if reqData.Title != "" {
		book.Title = reqData.Title
	}
	if reqData.Author != "" {
		book.Author = reqData.Author
	}
	if reqData.Description != "" {
		book.Description = reqData.Description
	}
	if reqData.PublishedYear != 0 {
		book.PublishedYear = reqData.PublishedYear
	}

	if err := ctrl.db.Save(&book).Error; err != nil {
		return err
	}

	return c.JSON(book)
}

// DeleteBook removes a book and every review referencing it. The cascade runs
// in one transaction so no orphaned reviews can survive.
func (ctrl *Controller) DeleteBook(c *fiber.Ctx) error {
	bookID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book ID")
	}

	var book models.Book
	if err := ctrl.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Book and associated reviews removed"})
}
