package gif

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
)

type gifHandler struct {
	gifService gifService
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := gifHandler{
		gifService: gifService{
			client: &http.Client{Timeout: 10 * time.Second},
		},
	}

	rg.GET("/gifs/search", middleware.VerifyAuthToken, handler.search)
}

func (gh *gifHandler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("q query parameter is required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	body, err := gh.gifService.search(query, limit, offset)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
