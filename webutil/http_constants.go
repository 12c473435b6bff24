package webutil

const (
	// Header Keys
	HeaderContentType        = "Content-Type"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderAuthorization      = "Authorization"
	HeaderAuthenticate       = "WWW-Authenticate"

	// Auth
	AuthSchemeBearer = "Bearer"

	// Content Types
	ContentTypeJSONUTF8      = "application/json; charset=utf-8"
	ContentTypeTextPlainUTF8 = "text/plain; charset=utf-8"
)
