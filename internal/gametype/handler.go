package gametype

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type gameTypeHandler struct {
	gameTypeService gameTypeService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := gameTypeHandler{
		gameTypeService: gameTypeService{db: db},
	}

	routes := rg.Group("/game-types")
	routes.GET("", middleware.VerifyAuthToken, handler.getGameTypes)
	routes.POST("", middleware.VerifyAuthToken, handler.createGameType)
}

func (gth *gameTypeHandler) getGameTypes(c *gin.Context) {
	gameTypes, err := gth.gameTypeService.getGameTypes()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gameTypes)
}

type CreateGameTypeRequest struct {
	Name string `json:"name"`
}

func (gth *gameTypeHandler) createGameType(c *gin.Context) {
	body := CreateGameTypeRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	gameType, created, err := gth.gameTypeService.createGameType(body.Name, utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gameType)
}
