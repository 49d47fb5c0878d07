package reviewController

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bookapi/aggregator"
	"bookapi/models"
	"bookapi/utils"
)

// Controller serves the review endpoints. Every write goes through the
// aggregator so the owning book's derived fields stay consistent with its
// review set.
type Controller struct {
	db  *gorm.DB
	agg *aggregator.Aggregator
}

func New(db *gorm.DB, agg *aggregator.Aggregator) *Controller {
	return &Controller{db: db, agg: agg}
}

// recompute refreshes the book's aggregate fields after a review write. The
// review row is already durable at this point: a failure here leaves a stale
// (rebuildable) aggregate, so it is logged instead of failing the request.
func (ctrl *Controller) recompute(bookID uint) {
	if err := ctrl.agg.Recompute(bookID); err != nil {
		log.Printf("Error recomputing aggregates for book %d: %v", bookID, err)
	}
}

// CreateBookReview submits the caller's review for a book. One review per
// user per book: the pre-check gives the friendly error, the unique index
// settles races.
func (ctrl *Controller) CreateBookReview(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	bookID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book ID")
	}

	reqData := new(struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body!")
	}

	if reqData.Rating < 1 || reqData.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "Rating must be between 1 and 5!")
	}
	if strings.TrimSpace(reqData.Comment) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please add a comment")
	}

	var book models.Book
	if err := ctrl.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	var existing models.Review
	if err := ctrl.db.Where("book_id = ? AND user_id = ?", bookID, userID).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Book already reviewed")
	}

	review := models.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
	}

	if err := ctrl.db.Create(&review).Error; err != nil {
		// A concurrent submission can slip past the pre-check; the unique
		// index reports it here and it is the same user-visible outcome.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, "Book already reviewed")
		}
		return err
	}

	ctrl.recompute(bookID)

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetBookReviews lists a book's reviews with the author name populated.
func (ctrl *Controller) GetBookReviews(c *fiber.Ctx) error {
	bookID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book ID")
	}

	reviews := []models.Review{}
	err := ctrl.db.Where("book_id = ?", bookID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Find(&reviews).Error
	if err != nil {
		return err
	}

	return c.JSON(reviews)
}

// DeleteReview removes a review. Only its author or an admin may do so.
func (ctrl *Controller) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	isAdmin, _ := c.Locals("isAdmin").(bool)

	reviewID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid review ID")
	}

	var review models.Review
	if err := ctrl.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Review not found")
		}
		return err
	}

	if review.UserID != userID && !isAdmin {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authorized")
	}

	if err := ctrl.db.Delete(&review).Error; err != nil {
		return err
	}

	ctrl.recompute(review.BookID)

	return c.JSON(fiber.Map{"message": "Review removed"})
}

// GetUserReviews lists a user's reviews, newest first, with the book title
// and author populated.
func (ctrl *Controller) GetUserReviews(c *fiber.Ctx) error {
	userID, ok := utils.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	reviews := []models.Review{}
	err := ctrl.db.Where("user_id = ?", userID).
		Preload("Book", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title, author")
		}).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return err
	}

	return c.JSON(reviews)
}
