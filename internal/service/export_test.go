package service

// Export for testing
var (
	ErrUsernameRequiredHelper = errUsernameRequired
	ErrInvalidUsernameHelper  = errInvalidUsername
	ErrEmailRequiredHelper    = errEmailRequired
	ErrPasswordRequiredHelper = errPasswordRequired
	ErrPasswordTooShortHelper = errPasswordTooShort
	ErrUserExistsHelper       = errUserExists
	ErrUserNotFoundHelper     = errUserNotFound
	ErrInvalidPasswordHelper  = errInvalidPassword
)

var OriginHost = originHost
