package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/pubsub"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
)

type feedbackHandler struct {
	feedbackService feedbackService
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := feedbackHandler{
		feedbackService: feedbackService{publish: pubsub.Publish},
	}

	rg.POST("/feedback", middleware.VerifyAuthToken, handler.sendFeedback)
}

type FeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (fh *feedbackHandler) sendFeedback(c *gin.Context) {
	body := FeedbackRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if err := fh.feedbackService.sendFeedback(body.Subject, body.Message, utils.GetIdentity(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
