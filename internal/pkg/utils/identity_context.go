package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
)

const identityCtxKey string = "identity"

func SetIdentityCtx(id identity.Identity, ctx *gin.Context) {
	ctx.Set(identityCtxKey, id)
}

func GetIdentity(ctx *gin.Context) identity.Identity {
	value, exists := ctx.Get(identityCtxKey)
	if !exists {
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return identity.Identity{}
	}
	return value.(identity.Identity)
}

func GetUserId(ctx *gin.Context) string {
	return GetIdentity(ctx).Id
}

func HasPermission(ctx *gin.Context, permission string) bool {
	return GetIdentity(ctx).HasPermission(permission)
}
