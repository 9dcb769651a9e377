package routes

import (
	"net/http"

	"blog-engagement/handlers"
	"blog-engagement/helper"
	"blog-engagement/middleware"
	"blog-engagement/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	ArticleService    services.ArticleService
	EngagementService services.EngagementService
	Helper            *helper.HTTPHelper
	JWTSecret         []byte
}

func NewRouter(deps Dependencies) *gin.Engine {
	articleHandler := handlers.NewArticleHandler(deps.ArticleService, deps.Helper)
	engagementHandler := handlers.NewEngagementHandler(deps.EngagementService, deps.Helper)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(deps.JWTSecret))
	{
		// Readable anonymously; drafts only resolve for their author.
		v1.GET("/articles", articleHandler.GetArticles)
		v1.GET("/articles/name/:name", articleHandler.GetArticleByName)
		v1.GET("/articles/:id", articleHandler.GetArticle)

		protected := v1.Group("/")
		protected.Use(middleware.RequireIdentity())
		{
			protected.GET("/me/articles", articleHandler.GetMyArticles)

			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)
				articles.POST("/:id/comments", engagementHandler.AddComment)
				articles.POST("/:id/like", engagementHandler.ToggleLike)
			}
		}
	}

	return router
}
