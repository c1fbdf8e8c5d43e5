package main

import (
	"hms/src/common"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.RouterGroup, rooms *common.RoomService) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			data, err := rooms.GetAllRooms(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err, "Failed to fetch rooms")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/rooms/availability", func(ctx *gin.Context) {
			var query types.AvailabilityQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Invalid query")
				return
			}
			data, err := rooms.CheckAvailability(ctx.Request.Context(), query.StartDate, query.EndDate)
			if err != nil {
				respondError(ctx, err, "Failed to check availability")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Room ID is required")
				return
			}
			data, err := rooms.GetRoomById(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err, "Failed to fetch room")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			data, err := rooms.CreateRoom(ctx.Request.Context(), &body)
			if err != nil {
				respondError(ctx, err, "Failed to create room")
				return
			}
			respondData(ctx, http.StatusCreated, data, "")
		})

	return g
}
