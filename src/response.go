package main

import (
	"errors"
	"hms/src/lib/logger"
	"hms/src/types"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondData(ctx *gin.Context, status int, data any, message string) {
	ctx.JSON(status, types.Response{Success: true, Data: data, Message: message})
}

func respondFailure(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, types.Response{Success: false, Error: msg})
}

// respondError maps service errors onto status codes. Unclassified errors
// are logged and replaced by failMsg.
func respondError(ctx *gin.Context, err error, failMsg string) {
	var verr *types.ValidationError
	var nerr *types.NotFoundError
	switch {
	case errors.As(err, &verr):
		respondFailure(ctx, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		respondFailure(ctx, http.StatusNotFound, nerr.Error())
	default:
		logger.Log.WithField("path", ctx.FullPath()).Errorf("%s: %s", failMsg, err.Error())
		respondFailure(ctx, http.StatusInternalServerError, failMsg)
	}
}

// bindBody decodes a JSON body into obj. An empty body decodes as {} so the
// request fails on its missing fields instead.
func bindBody(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		logger.Log.Debugf("Invalid request body: %s", err.Error())
		respondFailure(ctx, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
