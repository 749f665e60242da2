package invite

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type inviteHandler struct {
	inviteService inviteService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := inviteHandler{
		inviteService: inviteService{db: db},
	}

	challengeRoutes := rg.Group("/challenges/:id/invitations")
	challengeRoutes.POST("", middleware.VerifyAuthToken, handler.createInvitation)
	challengeRoutes.DELETE("/:invitationId", middleware.VerifyAuthToken, handler.revokeInvitation)

	tokenRoutes := rg.Group("/invitations")
	tokenRoutes.GET("/:token", handler.inspectInvitation)
	tokenRoutes.POST("/:token/accept", middleware.VerifyAuthToken, handler.acceptInvitation)
}

type CreateInvitationResponse struct {
	Token     string `json:"token"`
	InviteUrl string `json:"inviteUrl"`
}

func (ih *inviteHandler) createInvitation(c *gin.Context) {
	invitation, err := ih.inviteService.createInvitation(c.Param("id"), utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		scheme := "https"
		if c.Request.TLS == nil {
			scheme = "http"
		}
		origin = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}

	c.JSON(http.StatusCreated, CreateInvitationResponse{
		Token:     invitation.Token,
		InviteUrl: fmt.Sprintf("%s/challenges/invite/%s", origin, invitation.Token),
	})
}

func (ih *inviteHandler) inspectInvitation(c *gin.Context) {
	preview, err := ih.inviteService.inspect(c.Param("token"))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, preview)
}

type AcceptInvitationResponse struct {
	ChallengeId   string `json:"challengeId"`
	AlreadyJoined bool   `json:"alreadyJoined"`
}

func (ih *inviteHandler) acceptInvitation(c *gin.Context) {
	outcome, err := ih.inviteService.accept(c.Param("token"), utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, AcceptInvitationResponse{
		ChallengeId:   outcome.ChallengeId,
		AlreadyJoined: outcome.AlreadyJoined,
	})
}

func (ih *inviteHandler) revokeInvitation(c *gin.Context) {
	if err := ih.inviteService.revoke(c.Param("id"), c.Param("invitationId"), utils.GetUserId(c)); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.Status(http.StatusNoContent)
}
