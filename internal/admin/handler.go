package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

const viewAllGamesPermission = "admin_view_all_games"

type adminHandler struct {
	adminService adminService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := adminHandler{
		adminService: adminService{db: db},
	}

	routes := rg.Group("/admin")
	routes.GET("/challenges", middleware.VerifyAuthToken, handler.getAllChallenges)
}

func (ah *adminHandler) getAllChallenges(c *gin.Context) {
	if !utils.HasPermission(c, viewAllGamesPermission) {
		c.JSON(http.StatusForbidden, reject.ForbiddenProblem("missing "+viewAllGamesPermission+" permission"))
		return
	}

	challenges, err := ah.adminService.getAllChallenges()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, challenges)
}
