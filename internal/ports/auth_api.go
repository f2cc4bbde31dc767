package ports

import "context"

// AuthAPI is the backend login endpoint. It returns the raw bearer token;
// structural validation of the token belongs to the session service.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
}
