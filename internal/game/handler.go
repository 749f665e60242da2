package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type gameHandler struct {
	gameService gameService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := gameHandler{
		gameService: gameService{db: db},
	}

	routes := rg.Group("/challenges/:id/games")
	routes.GET("", middleware.VerifyAuthToken, handler.getGames)
	routes.POST("", middleware.VerifyAuthToken, handler.addGame)
	routes.PATCH("/:gameId", middleware.VerifyAuthToken, handler.updateGame)
	routes.DELETE("/:gameId", middleware.VerifyAuthToken, handler.deleteGame)
}

func (gh *gameHandler) getGames(c *gin.Context) {
	games, err := gh.gameService.getGames(c.Param("id"), utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, games)
}

func (gh *gameHandler) addGame(c *gin.Context) {
	body := GameRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	created, err := gh.gameService.addGame(c.Param("id"), utils.GetUserId(c), body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (gh *gameHandler) updateGame(c *gin.Context) {
	body := GameRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	updated, err := gh.gameService.updateGame(c.Param("id"), c.Param("gameId"), utils.GetUserId(c), body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (gh *gameHandler) deleteGame(c *gin.Context) {
	if err := gh.gameService.deleteGame(c.Param("id"), c.Param("gameId"), utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}
