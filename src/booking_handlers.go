package main

import (
	"hms/src/common"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, bookings *common.BookingService) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			data, err := bookings.GetAllBookings(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err, "Failed to fetch bookings")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Booking ID is required")
				return
			}
			data, err := bookings.GetBookingById(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err, "Failed to fetch booking")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/bookings/room/:roomId", func(ctx *gin.Context) {
			var params types.RoomRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Room ID is required")
				return
			}
			data, err := bookings.GetBookingsByRoom(ctx.Request.Context(), params.RoomID)
			if err != nil {
				respondError(ctx, err, "Failed to fetch bookings")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			data, err := bookings.CreateBooking(ctx.Request.Context(), &body)
			if err != nil {
				respondError(ctx, err, "Failed to create booking")
				return
			}
			respondData(ctx, http.StatusCreated, data, common.MSG_BOOKING_CREATED)
		})

	return g
}
