package controller

import (
	"github.com/venchfc/litmusEU/auth"
	"github.com/venchfc/litmusEU/repository"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []repository.Role
}

func SetRoutes(r *gin.Engine, db *gorm.DB, cacheStore persistence.CacheStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupAuthController(db)...)
	routes = append(routes, setupEventController(db)...)
	routes = append(routes, setupCompetitionController(db)...)
	routes = append(routes, setupContestantController(db)...)
	routes = append(routes, setupCriterionController(db)...)
	routes = append(routes, setupJudgeController(db)...)
	routes = append(routes, setupUserController(db)...)
	routes = append(routes, setupScoreController(db, cacheStore)...)
	routes = append(routes, setupResultsController(db, cacheStore)...)
	routes = append(routes, setupAdminController(db)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(roles []repository.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCookie, err := c.Cookie("auth")
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		token, err := auth.ParseToken(authCookie)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		if len(roles) == 0 {
			c.Next()
			return
		}
		for _, requiredRole := range roles {
			if claims.Role == requiredRole {
				c.Next()
				return
			}
		}
		c.JSON(403, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}
