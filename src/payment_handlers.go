package main

import (
	"hms/src/common"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup, payments *common.PaymentService) *gin.RouterGroup {
	g.
		GET("/payments", func(ctx *gin.Context) {
			data, err := payments.GetAllPayments(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err, "Failed to fetch payments")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/payments/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Payment ID is required")
				return
			}
			data, err := payments.GetPaymentById(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err, "Failed to fetch payment")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		GET("/payments/booking/:bookingId", func(ctx *gin.Context) {
			var params types.BookingRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Booking ID is required")
				return
			}
			data, err := payments.GetPaymentsByBooking(ctx.Request.Context(), params.BookingID)
			if err != nil {
				respondError(ctx, err, "Failed to fetch payments")
				return
			}
			respondData(ctx, http.StatusOK, data, "")
		}).
		POST("/payments", func(ctx *gin.Context) {
			var body types.CreatePaymentRequestBody
			if !bindBody(ctx, &body) {
				return
			}
			data, err := payments.CreatePayment(ctx.Request.Context(), &body)
			if err != nil {
				respondError(ctx, err, "Failed to create payment")
				return
			}
			respondData(ctx, http.StatusCreated, data, common.MSG_PAYMENT_CREATED)
		}).
		POST("/payments/:id/process", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondFailure(ctx, http.StatusBadRequest, "Payment ID is required")
				return
			}
			data, msg, err := payments.ProcessPayment(ctx.Request.Context(), params.ID)
			if err != nil {
				respondError(ctx, err, "Failed to process payment")
				return
			}
			respondData(ctx, http.StatusOK, data, msg)
		})

	return g
}
