package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type RatingController struct {
	Ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{Ratings: ratings}
}

func (rc *RatingController) CreateRating(c *gin.Context) {
	var req struct {
		CustomerName string `json:"customer_name"`
		Score        int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rating, err := rc.Ratings.Rate(c.Request.Context(), req.CustomerName, req.Score)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Thanks for the feedback", rating)
}

func (rc *RatingController) GetAllRatings(c *gin.Context) {
	ratings, err := rc.Ratings.ListRatings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ratings", ratings)
}
