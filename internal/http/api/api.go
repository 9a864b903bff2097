package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *Error)
type HandlerFunc func(ctx *gin.Context) (any, *Error)

// Created makes the endpoint answer 201 with Body.
type Created struct {
	Body any
}

type notModified struct{}

// NotModified makes the endpoint answer 304 without a body.
var NotModified any = notModified{}

func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// FromError maps service and engine errors to HTTP errors. Unknown errors are logged and
// reported as 500 without leaking their text.
func FromError(err error) *Error {
	var (
		fve *scheduling.FieldValidationError
		brv *scheduling.BusinessRuleViolation
		sce *scheduling.ScheduleConflictError
		nf  *scheduling.NotFoundError
	)
	switch {
	case errors.As(err, &fve):
		return &Error{Code: http.StatusUnprocessableEntity, Message: "invalid fields", Details: fve.Fields}
	case errors.As(err, &brv):
		return &Error{Code: http.StatusUnprocessableEntity, Message: brv.Reason, Details: gin.H{"field": brv.Field}}
	case errors.As(err, &sce):
		return &Error{Code: http.StatusConflict, Message: "schedule conflicts with existing schedules", Details: sce.Conflicts}
	case errors.As(err, &nf):
		return &Error{Code: http.StatusNotFound, Message: nf.Error()}
	case errors.Is(err, db.ErrNotFound):
		return &Error{Code: http.StatusNotFound, Message: "not found"}
	}
	log.Error().Err(err).Msg("request failed")
	return &Error{Code: http.StatusInternalServerError, Message: "internal error"}
}

func respond(ctx *gin.Context, result any, apiErr *Error) {
	if apiErr != nil {
		ctx.AbortWithStatusJSON(apiErr.Code, apiErr)
		return
	}
	switch v := result.(type) {
	case Created:
		ctx.JSON(http.StatusCreated, v.Body)
	case notModified:
		ctx.Status(http.StatusNotModified)
	default:
		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		respond(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		respond(ctx, result, apiErr)
	}
}
