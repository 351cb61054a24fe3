package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/mirrorapp/mirror/internal/api"
	"github.com/mirrorapp/mirror/internal/config"
	"github.com/mirrorapp/mirror/internal/middleware"
	"github.com/mirrorapp/mirror/internal/thumbs"
	"github.com/mirrorapp/mirror/internal/web/handlers"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	client := api.NewClient(cfg.ServerAddress, config.RequestTimeout)

	gen, err := thumbs.NewGenerator(cfg.ThumbDir)
	if err != nil {
		log.Fatalln(err)
	}

	h := handlers.NewHandler(client, cfg, gen)

	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("mirror_session", store))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.ServerAddress))
	r.Use(middleware.AuthMiddleware())

	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/feed")
	})

	r.GET("/login", h.LoginViewHandler)
	r.POST("/login", h.LoginSubmitHandler)
	r.GET("/logout", h.LogoutHandler)

	r.GET("/signup", h.SignupViewHandler)
	r.POST("/signup", h.SignupSubmitHandler)
	r.POST("/signup/check", h.SignupCheckHandler)

	r.GET("/forgot", h.ForgotViewHandler)
	r.POST("/forgot/send", h.ForgotSendHandler)
	r.POST("/forgot/reset", h.ForgotResetHandler)

	r.GET("/feed", h.FeedViewHandler)
	r.POST("/feed/more", h.FeedMoreHandler)
	r.POST("/feed/like", h.FeedLikeHandler)
	r.POST("/feed/comments/open", h.CommentsOpenHandler)
	r.POST("/feed/comments/close", h.CommentsCloseHandler)
	r.POST("/feed/comments", h.CommentSubmitHandler)

	r.GET("/explore", h.ExploreViewHandler)
	r.POST("/explore/like", h.ExploreLikeHandler)
	r.POST("/explore/scroll", h.ExploreScrollHandler)

	r.GET("/share", h.ShareViewHandler)
	r.POST("/share", h.ShareSubmitHandler)
	r.POST("/share/media", h.ShareMediaHandler)
	r.POST("/share/discard", h.ShareDiscardHandler)

	r.GET("/profile", h.ProfileViewHandler)
	r.POST("/profile/follow", h.FollowHandler)

	r.GET("/health", h.HealthHandler)

	log.Printf("Mirror client listening on %s (server: %s)", cfg.ListenAddr, cfg.ServerAddress)

	r.Run(cfg.ListenAddr)
}
