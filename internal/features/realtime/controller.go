package realtime

import (
	"net/http"
	"strings"
	"time"

	"taskhive/internal/events"
	"taskhive/internal/features/access"
	projects_services "taskhive/internal/features/projects/services"
	users_models "taskhive/internal/features/users/models"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Controller struct {
	hub            *Hub
	userService    *users_services.UserService
	projectService *projects_services.ProjectService
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	wsRoutes := router.Group("/ws")

	wsRoutes.GET("/projects/:id", c.ProjectStream)
	wsRoutes.GET("/me", c.UserStream)
}

// ProjectStream upgrades to a websocket subscribed to the project's
// channel. Browsers cannot set headers on websocket requests, so the
// token is also accepted as a query parameter.
func (c *Controller) ProjectStream(ctx *gin.Context) {
	user, err := c.authenticate(ctx)
	if err != nil {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	snapshot, err := c.projectService.GetProjectSnapshot(projectID)
	if err != nil || snapshot == nil {
		response.Fail(ctx, http.StatusNotFound, "project not found")
		return
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpProjectView); !decision.Allowed {
		response.Fail(ctx, http.StatusForbidden, decision.Reason)
		return
	}

	c.serve(ctx, events.ProjectChannel(projectID))
}

// UserStream subscribes the caller to their personal channel, where
// notification events land.
func (c *Controller) UserStream(ctx *gin.Context) {
	user, err := c.authenticate(ctx)
	if err != nil {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	c.serve(ctx, events.UserChannel(user.ID))
}

func (c *Controller) authenticate(ctx *gin.Context) (*users_models.User, error) {
	token := ctx.Query("token")
	if token == "" {
		token = strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	}

	return c.userService.GetUserFromToken(token)
}

func (c *Controller) serve(ctx *gin.Context, channel string) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.hub.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cl := c.hub.Subscribe(channel, conn)
	defer func() {
		c.hub.Unsubscribe(channel, conn)
		conn.Close()
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	// Pings go through the client wrapper so they never interleave
	// with a concurrent hub fan-out on the same connection.
	go func() {
		for range ticker.C {
			if err := cl.writePing(); err != nil {
				return
			}
		}
	}()

	// Inbound messages are ignored; the stream is server-to-client.
	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
