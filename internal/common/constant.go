package common

// Names of the token carriers. The cookie names are shared with existing
// browser clients and must not change.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	AccessTokenCookieName  = "access_token_cookie"
	RefreshTokenCookieName = "refresh_token_cookie"
)
