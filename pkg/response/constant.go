package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Internal server error"

	BadRequestErrorCode      = 1
	UnauthorizedErrorCode    = 401
	ForbiddenErrorCode       = 403
	TooManyRequestsErrorCode = 429
	InternalServerErrorCode  = 500
)
