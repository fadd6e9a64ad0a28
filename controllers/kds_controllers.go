package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/brenosouzaaa/sistema-pizzaria/kds"
	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the route sits behind AuthMiddleware
	},
}

type KDSController struct {
	Hub *kds.Hub
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{Hub: hub}
}

// KDSHandler upgrades to a websocket and keeps the connection registered
// until the client goes away.
func (kc *KDSController) KDSHandler(c *gin.Context) {
	role := c.GetString(middlewares.CtxRole)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	kc.Hub.Register(ws, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	kc.Hub.Unregister(ws)
}
