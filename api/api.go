package api

import (
	"fmt"
	"net/http"

	"intelvest/internal/app"
	"intelvest/internal/apperrors"
	"intelvest/internal/logger"
	"intelvest/internal/viewstate"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Orchestrator app.Orchestrator
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to intelvest"})
	})
	router.GET("/dashboard", m.dashboard)
	router.GET("/stocks/:symbol/prediction", m.prediction)
	router.GET("/stocks/:symbol/sentiment", m.sentiment)
	router.GET("/stocks/:symbol/social", m.social)
	router.GET("/portfolio", m.portfolio)
	router.GET("/market", m.market)

	return router.Run(fmt.Sprintf(":%d", port))
}

// viewResponse is the envelope every view resolver returns. Status and
// warnings mirror the view state machine so clients can render loading,
// partial and error affordances uniformly.
type viewResponse struct {
	Status   string      `json:"status"`
	Partial  bool        `json:"partial"`
	Warnings []string    `json:"warnings,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func toViewResponse[T any](view viewstate.View[T], data interface{}) viewResponse {
	return viewResponse{
		Status:   string(view.Status),
		Partial:  view.Partial(),
		Warnings: view.Warnings,
		Data:     data,
	}
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindAuthUnavailable:
		return http.StatusUnauthorized
	case apperrors.KindTimeout:
		return http.StatusGatewayTimeout
	case apperrors.KindTransportFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	logger.Error(err)
	c.AbortWithStatusJSON(statusForKind(apperrors.KindOf(err)), gin.H{
		"error": apperrors.MessageOf(err),
		"kind":  string(apperrors.KindOf(err)),
	})
}
