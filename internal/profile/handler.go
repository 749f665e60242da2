package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/reject"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/utils"
	"gorm.io/gorm"
)

type profileHandler struct {
	profileService profileService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, directory identity.Directory) {
	handler := profileHandler{
		profileService: profileService{db: db, directory: directory},
	}

	rg.GET("/user-preferences", middleware.VerifyAuthToken, handler.getPreferences)
	rg.PATCH("/user-preferences", middleware.VerifyAuthToken, handler.setPreference)
	rg.POST("/user-profiles", middleware.VerifyAuthToken, handler.getProfiles)
	rg.POST("/public/user-profiles", handler.getPublicProfiles)
}

func (ph *profileHandler) getPreferences(c *gin.Context) {
	prefs, err := ph.profileService.getPreferences(utils.GetUserId(c))
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

type SetPreferenceRequest struct {
	ShowPublicProfilePic *bool `json:"showPublicProfilePic"`
}

func (ph *profileHandler) setPreference(c *gin.Context) {
	body := SetPreferenceRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if body.ShowPublicProfilePic == nil {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("showPublicProfilePic must be a boolean"))
		return
	}

	if err := ph.profileService.setPreference(utils.GetUserId(c), *body.ShowPublicProfilePic); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, Preferences{ShowPublicProfilePic: *body.ShowPublicProfilePic})
}

type ProfileBatchRequest struct {
	UserIds []string `json:"userIds"`
}

func (ph *profileHandler) getProfiles(c *gin.Context) {
	body := ProfileBatchRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if len(body.UserIds) == 0 {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("userIds array required"))
		return
	}

	batch, err := ph.profileService.getProfiles(body.UserIds)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (ph *profileHandler) getPublicProfiles(c *gin.Context) {
	body := ProfileBatchRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}
	if len(body.UserIds) == 0 {
		c.JSON(http.StatusBadRequest, reject.ValidationProblem("userIds array required"))
		return
	}

	batch, err := ph.profileService.getPublicProfiles(body.UserIds)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, batch)
}
