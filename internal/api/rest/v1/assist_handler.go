package v1

import (
	"context"
	"fmt"
	"net/http"

	"clinical_voice_service/internal/app"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AssistService is the dispatcher contract the assist endpoints depend on
type AssistService interface {
	Dispatch(ctx context.Context, message string) (*app.DispatchResult, error)
}

// AssistHandler defines the interface for handling assistant requests
type AssistHandler interface {
	Assist(ctx *gin.Context)
	Stream(ctx *gin.Context)
}

type assistHandler struct {
	dispatcher AssistService
	upgrader   websocket.Upgrader
	logger     logger.Logger
}

// NewAssistHandler creates a new AssistHandler
func NewAssistHandler(dispatcher AssistService, logger logger.Logger) AssistHandler {
	return &assistHandler{
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the web console origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Assist dispatches one typed utterance and returns the reply
func (handler *assistHandler) Assist(ctx *gin.Context) {
	var request AssistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorMessage := "invalid request body"
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("validation failed: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	result, err := handler.dispatcher.Dispatch(ctx, request.Message)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("error dispatching message: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, AssistResponse{
		EncounterID: result.EncounterID,
		Agent:       result.Agent,
		Reply:       result.Reply,
		Response:    result.Response,
	})
}

// Stream upgrades the connection and dispatches each text frame as an
// utterance, writing one AssistResponse frame per request.
func (handler *assistHandler) Stream(ctx *gin.Context) {
	conn, err := handler.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		var errorResponse ErrorResponse
		errorMessage := fmt.Sprintf("could not upgrade connection: %v", err.Error())
		errorResponse.Message = &errorMessage
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			handler.logger.Warn("Failed to close websocket: ", err)
		}
	}()

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				handler.logger.Warn("Websocket read failed: ", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		result, err := handler.dispatcher.Dispatch(ctx.Request.Context(), string(payload))
		if err != nil {
			message := err.Error()
			if writeErr := conn.WriteJSON(ErrorResponse{Message: &message}); writeErr != nil {
				handler.logger.Warn("Websocket write failed: ", writeErr)
				return
			}
			continue
		}

		if err := conn.WriteJSON(AssistResponse{
			EncounterID: result.EncounterID,
			Agent:       result.Agent,
			Reply:       result.Reply,
			Response:    result.Response,
		}); err != nil {
			handler.logger.Warn("Websocket write failed: ", err)
			return
		}
	}
}
