package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-rail/api/identity"
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/beka-birhanu/vinom-rail/service"
	"github.com/beka-birhanu/vinom-rail/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingTarget = errors.New("either x and y or px and py are required")

// GameController serves rail game sessions.
type GameController struct {
	sessions i.GameSessionManager
}

// NewGameController initializes a GameController.
func NewGameController(gsm i.GameSessionManager) *GameController {
	return &GameController{sessions: gsm}
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/games", gc.newGame)
}

// RegisterProtected registers routes that need the session's token.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games/:ID")
	games.Use(gc.ownSession)
	{
		games.GET("", gc.state)
		games.POST("/moves", gc.move)
		games.DELETE("", gc.exit)
	}
}

// newGame starts a session and hands out its token.
func (gc *GameController) newGame(ctx *gin.Context) {
	id, token, state, err := gc.sessions.NewSession()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating the rail network"})
		return
	}

	ctx.JSON(http.StatusCreated, &NewGameResponse{SessionID: id, Token: token, State: state})
}

// ownSession rejects requests whose token was issued for another session.
func (gc *GameController) ownSession(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	tokenID, ok := identity.SessionID(ctx)
	if !ok || tokenID != id {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not belong to this session"})
		return
	}

	ctx.Set(identity.ContextSessionID, id)
	ctx.Next()
}

func (gc *GameController) state(ctx *gin.Context) {
	id, _ := identity.SessionID(ctx)
	state, err := gc.sessions.State(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (gc *GameController) move(ctx *gin.Context) {
	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, _ := identity.SessionID(ctx)

	var (
		out   game.Outcome
		state game.State
		err   error
	)
	switch {
	case request.X != nil && request.Y != nil:
		out, state, err = gc.sessions.Move(id, maze.Position{X: *request.X, Y: *request.Y})
	case request.PX != nil && request.PY != nil:
		out, state, err = gc.sessions.MovePixel(id, *request.PX, *request.PY)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errMissingTarget.Error()})
		return
	}

	if errors.Is(err, game.ErrInvalidMove) {
		ctx.JSON(http.StatusUnprocessableEntity, &RejectedMoveResponse{Error: err.Error(), State: state})
		return
	}
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{Outcome: out, State: state})
}

func (gc *GameController) exit(ctx *gin.Context) {
	id, _ := identity.SessionID(ctx)
	score, err := gc.sessions.Exit(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &ExitResponse{FinalScore: score})
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrRegenerating):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
