package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "vn_access_token"
)
