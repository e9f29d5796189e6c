package middleware

import (
	"strings"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/services"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ActorMiddleware resolves an Authorization bearer token to a user and stores
// it in the request context. Missing or unknown tokens leave the actor nil;
// the permission gate decides what anonymous actors may do.
func ActorMiddleware(userService *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if user, err := userService.GetUserByAccessToken(token); err == nil {
				c.Set(actorKey, user)
			}
		}

		c.Next()
	}
}

// GetActor retrieves the resolved actor from the context, nil when anonymous
func GetActor(c *gin.Context) *models.User {
	actor, exists := c.Get(actorKey)
	if !exists {
		return nil
	}

	if user, ok := actor.(*models.User); ok {
		return user
	}

	return nil
}
