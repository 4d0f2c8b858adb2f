package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/listabot/components/lists"
	"github.com/Dev-Cordeiro/Bot-listagem-discord/src/shared/data"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, *lists.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, data.Migrate(db))
	return New(db), lists.NewStore(db)
}

func doGET(t *testing.T, g *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	g, _ := newTestServer(t)

	w := doGET(t, g, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListsEndpoint(t *testing.T) {
	g, store := newTestServer(t)
	require.NoError(t, store.EnsureList(lists.Coord{GuildID: "g1", ChannelID: "c1", Name: "compras"}))
	require.NoError(t, store.EnsureList(lists.Coord{GuildID: "g2", ChannelID: "c9", Name: "outras"}))

	w := doGET(t, g, "/v1/guilds/g1/lists")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Lists []listView `json:"lists"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Lists, 1)
	assert.Equal(t, "compras", body.Lists[0].Name)
	assert.Equal(t, "c1", body.Lists[0].ChannelID)
}

func TestItemsEndpoint(t *testing.T) {
	g, store := newTestServer(t)
	coord := lists.Coord{GuildID: "g1", ChannelID: "c1", Name: "compras"}
	require.NoError(t, store.EnsureList(coord))
	require.NoError(t, store.CreateItem(coord, 1, "Arroz", 3))

	w := doGET(t, g, "/v1/guilds/g1/channels/c1/lists/compras/items")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []itemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, itemView{ItemID: 1, Name: "Arroz", Qty: 3}, body.Items[0])
}

func TestItemsEndpointUnknownList(t *testing.T) {
	g, _ := newTestServer(t)

	w := doGET(t, g, "/v1/guilds/g1/channels/c1/lists/compras/items")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
