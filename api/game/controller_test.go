package gameapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-rail/api"
	api_i "github.com/beka-birhanu/vinom-rail/api/i"
	"github.com/beka-birhanu/vinom-rail/api/identity"
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/beka-birhanu/vinom-rail/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenizerFunc accepts a session ID as its own token.
type tokenizerFunc func(string) (uuid.UUID, error)

func (f tokenizerFunc) Generate(id uuid.UUID, _ time.Duration) (string, error) {
	return id.String(), nil
}

func (f tokenizerFunc) Decode(token string) (uuid.UUID, error) {
	return f(token)
}

type fakeManager struct {
	id      uuid.UUID
	state   game.State
	moveErr error
	moved   []maze.Position
	pixels  [][2]float64
	exited  bool
}

func (f *fakeManager) NewSession() (uuid.UUID, string, game.State, error) {
	return f.id, f.id.String(), f.state, nil
}

func (f *fakeManager) State(id uuid.UUID) (game.State, error) {
	if id != f.id || f.exited {
		return game.State{}, service.ErrSessionNotFound
	}
	return f.state, nil
}

func (f *fakeManager) Move(id uuid.UUID, to maze.Position) (game.Outcome, game.State, error) {
	f.moved = append(f.moved, to)
	if f.moveErr != nil {
		return game.Outcome{}, f.state, f.moveErr
	}
	return game.Outcome{From: f.state.Position, To: to}, f.state, nil
}

func (f *fakeManager) MovePixel(id uuid.UUID, x, y float64) (game.Outcome, game.State, error) {
	f.pixels = append(f.pixels, [2]float64{x, y})
	return game.Outcome{}, f.state, nil
}

func (f *fakeManager) Exit(id uuid.UUID) (int, error) {
	f.exited = true
	return f.state.Score, nil
}

func newServer(t *testing.T, gsm *fakeManager) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenizer := tokenizerFunc(func(token string) (uuid.UUID, error) { return uuid.Parse(token) })
	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{NewGameController(gsm)},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})
	return router.Handler()
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGameController_NewGame(t *testing.T) {
	gsm := &fakeManager{id: uuid.New(), state: game.State{Size: 6, Position: maze.Position{X: 0, Y: 2}}}
	h := newServer(t, gsm)

	w := do(h, http.MethodPost, "/api/v1/games", "", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp NewGameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, gsm.id, resp.SessionID)
	assert.Equal(t, gsm.id.String(), resp.Token)
	assert.Equal(t, 6, resp.State.Size)
}

func TestGameController_Authorization(t *testing.T) {
	gsm := &fakeManager{id: uuid.New()}
	h := newServer(t, gsm)
	path := "/api/v1/games/" + gsm.id.String()

	t.Run("Missing token", func(t *testing.T) {
		w := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token for another session", func(t *testing.T) {
		w := do(h, http.MethodGet, path, uuid.NewString(), "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Malformed session id", func(t *testing.T) {
		w := do(h, http.MethodGet, "/api/v1/games/not-a-uuid", gsm.id.String(), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Own session", func(t *testing.T) {
		w := do(h, http.MethodGet, path, gsm.id.String(), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGameController_Move(t *testing.T) {
	id := uuid.New()
	path := "/api/v1/games/" + id.String() + "/moves"

	t.Run("Cell target", func(t *testing.T) {
		gsm := &fakeManager{id: id}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":1,"y":2}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []maze.Position{{X: 1, Y: 2}}, gsm.moved)
	})

	t.Run("Pixel target", func(t *testing.T) {
		gsm := &fakeManager{id: id}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"px":85.5,"py":3}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, [][2]float64{{85.5, 3}}, gsm.pixels)
	})

	t.Run("Zero cell is a valid target", func(t *testing.T) {
		gsm := &fakeManager{id: id}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":0,"y":0}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []maze.Position{{X: 0, Y: 0}}, gsm.moved)
	})

	t.Run("Missing target", func(t *testing.T) {
		gsm := &fakeManager{id: id}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, gsm.moved)
	})

	t.Run("Rejected move", func(t *testing.T) {
		gsm := &fakeManager{id: id, moveErr: game.ErrNoTrack, state: game.State{Position: maze.Position{X: 0, Y: 1}}}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":0,"y":0}`)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp RejectedMoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, game.ErrNoTrack.Error(), resp.Error)
		assert.Equal(t, maze.Position{X: 0, Y: 1}, resp.State.Position)
	})

	t.Run("Game over", func(t *testing.T) {
		gsm := &fakeManager{id: id, moveErr: game.ErrGameOver}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":0,"y":0}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unexpected error", func(t *testing.T) {
		gsm := &fakeManager{id: id, moveErr: errors.New("boom")}
		w := do(newServer(t, gsm), http.MethodPost, path, id.String(), `{"x":0,"y":0}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGameController_Exit(t *testing.T) {
	id := uuid.New()
	gsm := &fakeManager{id: id, state: game.State{Score: 4}}
	h := newServer(t, gsm)
	path := "/api/v1/games/" + id.String()

	w := do(h, http.MethodDelete, path, id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExitResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp))
	assert.Equal(t, 4, resp.FinalScore)
	assert.True(t, gsm.exited)

	w = do(h, http.MethodGet, path, id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
