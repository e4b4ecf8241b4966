package utils

import (
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OkResponse[T any] struct {
	Payload T `json:"payload"`
}

func CreateOkResponse[T any](obj T) (int, OkResponse[T]) {
	return http.StatusOK, OkResponse[T]{Payload: obj}
}

func CreateErrorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrorUuidNotFound),
		errors.Is(err, ErrorInstanceNotFound),
		errors.Is(err, ErrorProfileNotFound):
		return http.StatusNotFound, ErrorResponse{Code: -1, Message: err.Error()}
	case errors.Is(err, ErrorInvalidCredentials):
		return http.StatusBadRequest, ErrorResponse{Code: 1001, Message: err.Error()}
	case errors.Is(err, ErrorUnsupportedAction):
		return http.StatusBadRequest, ErrorResponse{Code: 2001, Message: err.Error()}
	case errors.Is(err, ErrorMissingArgument):
		return http.StatusBadRequest, ErrorResponse{Code: 2002, Message: err.Error()}
	case errors.Is(err, ErrorInstanceExists):
		return http.StatusBadRequest, ErrorResponse{Code: 3001, Message: err.Error()}
	case errors.Is(err, ErrorInvalidProfile):
		return http.StatusBadRequest, ErrorResponse{Code: 4001, Message: err.Error()}
	case errors.Is(err, ErrorUpstreamFailure):
		return http.StatusBadGateway, ErrorResponse{Code: 5001, Message: err.Error()}
	case errors.Is(err, ErrorDatabaseError):
		return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()}
	// Permission / Access errors
	case errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrorOpenIDAuthDisabled),
		errors.Is(err, ErrorNativeAuthDisabled):
		return http.StatusUnauthorized, ErrorResponse{Code: 401, Message: err.Error()}
	case errors.Is(err, ErrorTokenInvalid):
		return 498, ErrorResponse{Code: 498, Message: err.Error()}
	case errors.Is(err, ErrorChatTokenInvalid),
		errors.Is(err, ErrorForbidden):
		return http.StatusForbidden, ErrorResponse{Code: 403, Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()}
}

func CreateValidationError(err error) (int, ErrorResponse) {
	return http.StatusUnprocessableEntity, ErrorResponse{Code: 422, Message: err.Error()}
}
