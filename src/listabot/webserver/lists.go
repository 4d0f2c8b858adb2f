package webserver

import (
	"errors"
	"net/http"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/lists"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type handlers struct {
	db    *gorm.DB
	store *lists.Store
}

func attachRoutes(g *gin.Engine, db *gorm.DB) {
	h := handlers{db: db, store: lists.NewStore(db)}

	g.GET("/healthz", h.health)

	v1 := g.Group("/v1")
	v1.GET("/guilds/:guild/lists", h.lists)
	v1.GET("/guilds/:guild/channels/:channel/lists/:list/items", h.items)
}

type listView struct {
	ChannelID string `json:"channelId"`
	Name      string `json:"name"`
	MessageID string `json:"messageId,omitempty"`
}

type itemView struct {
	ItemID uint32 `json:"itemId"`
	Name   string `json:"name"`
	Qty    int64  `json:"qty"`
}

func (h handlers) health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h handlers) lists(c *gin.Context) {
	rows, err := h.store.Lists(c.Param("guild"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	out := make([]listView, len(rows))
	for i, l := range rows {
		out[i] = listView{ChannelID: l.ChannelID, Name: l.Name, MessageID: l.MessageID}
	}
	c.JSON(http.StatusOK, gin.H{"lists": out})
}

func (h handlers) items(c *gin.Context) {
	coord := lists.Coord{
		GuildID:   c.Param("guild"),
		ChannelID: c.Param("channel"),
		Name:      c.Param("list"),
	}

	if _, err := h.store.List(coord); err != nil {
		if errors.Is(err, lists.ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	rows, err := h.store.Items(coord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	out := make([]itemView, len(rows))
	for i, it := range rows {
		out[i] = itemView{ItemID: it.ItemID, Name: it.Name, Qty: it.Qty}
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
