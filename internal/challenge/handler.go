package challenge

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"github.com/gotimer-app/gotimer-backend/internal/score"
	"gorm.io/gorm"
)

type challengeHandler struct {
	challengeService challengeService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := challengeHandler{
		challengeService: challengeService{
			db:     db,
			scores: score.Service{},
		},
	}

	routes := rg.Group("/challenges")
	routes.POST("", middleware.VerifyAuthToken, handler.createChallenge)
	routes.GET("", middleware.VerifyAuthToken, handler.getOwnChallenges)
	routes.GET("/:id", middleware.VerifyAuthToken, handler.getChallenge)
	routes.PATCH("/:id", middleware.VerifyAuthToken, handler.updateChallenge)
	routes.DELETE("/:id", middleware.VerifyAuthToken, handler.deleteChallenge)

	public := rg.Group("/public/challenges")
	public.GET("", handler.getPublicChallenges)
	public.GET("/:id", handler.getPublicChallenge)
}

func (ch *challengeHandler) createChallenge(c *gin.Context) {
	body := CreateChallengeRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	created, err := ch.challengeService.createChallenge(body, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (ch *challengeHandler) getOwnChallenges(c *gin.Context) {
	challenges, err := ch.challengeService.getOwnChallenges(utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, challenges)
}

func (ch *challengeHandler) getChallenge(c *gin.Context) {
	detail, err := ch.challengeService.getChallenge(c.Param("id"), utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (ch *challengeHandler) updateChallenge(c *gin.Context) {
	body := UpdateChallengeRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	updated, err := ch.challengeService.updateChallenge(c.Param("id"), utils.GetUserId(c), body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (ch *challengeHandler) deleteChallenge(c *gin.Context) {
	if err := ch.challengeService.deleteChallenge(c.Param("id"), utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}

func (ch *challengeHandler) getPublicChallenges(c *gin.Context) {
	page := utils.NewPageRequest(c)

	challenges, total, err := ch.challengeService.getPublicChallenges(page)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	response := utils.NewPageResponse[PublicChallengeSummary]().
		WithItems(challenges).
		WithItemCount(total)

	if total > int64((page.Token+1)*page.Size) {
		response.WithNextPageToken(int64(page.Token + 1))
	}

	c.JSON(http.StatusOK, response.Build())
}

func (ch *challengeHandler) getPublicChallenge(c *gin.Context) {
	detail, err := ch.challengeService.getPublicChallenge(c.Param("id"))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, detail)
}
