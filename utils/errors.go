package utils

import "errors"

var ErrorServer = errors.New("there was a problem processing the request")
var ErrorDatabaseError = errors.New("there was a problem accessing the database")
var ErrorValidationError = errors.New("the data provided was invalid")
var ErrorUuidNotFound = errors.New("the specified uuid was not found")

// Chat command errors
var ErrorUnsupportedAction = errors.New("the requested action is not supported")
var ErrorMissingArgument = errors.New("a required argument is missing")
var ErrorUpstreamFailure = errors.New("the cloud provider call failed")

// Instance errors
var ErrorInstanceNotFound = errors.New("no instance with that name was found")
var ErrorInstanceExists = errors.New("an instance with that name already exists")

// Profile errors
var ErrorProfileNotFound = errors.New("no launch profile with that name was found")
var ErrorInvalidProfile = errors.New("the launch profile did not pass schema validation")

// Auth / access errors
var ErrorUnauthorized = errors.New("the user is not authorized")
var ErrorForbidden = errors.New("access to the resource was denied")
var ErrorTokenInvalid = errors.New("the provided token was invalid")
var ErrorInvalidCredentials = errors.New("the credentials provided were invalid")
var ErrorChatTokenInvalid = errors.New("the chat webhook token was invalid")
var ErrorOpenIDError = errors.New("failed to authenticate with the OpenID provider")
var ErrorOpenIDAuthDisabled = errors.New("OpenID authentication is disabled")
var ErrorNativeAuthDisabled = errors.New("native authentication is disabled")
