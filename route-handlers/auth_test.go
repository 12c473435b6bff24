package routehandlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/recipebox/webutil"
)

func TestRegisterRequest_DisplayUsername(t *testing.T) {
	tests := []struct {
		name string
		req  registerRequest
		want string
	}{
		{name: "explicit username wins", req: registerRequest{Username: " alice ", FirstName: "Alice", LastName: "Smith"}, want: "alice"},
		{name: "first and last", req: registerRequest{FirstName: "Alice", LastName: "Smith"}, want: "Alice Smith"},
		{name: "first only", req: registerRequest{FirstName: "Alice"}, want: "Alice"},
		{name: "nothing", req: registerRequest{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.displayUsername())
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := registerRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	require.NoError(t, valid.validate())

	tests := []struct {
		name    string
		mutate  func(*registerRequest)
		message string
	}{
		{name: "no name", mutate: func(r *registerRequest) { r.Username = "" }, message: "Username (or firstName and lastName) is required"},
		{name: "long name", mutate: func(r *registerRequest) { r.Username = strings.Repeat("a", 51) }, message: "Username must be at most 50 characters"},
		{name: "no email", mutate: func(r *registerRequest) { r.Email = " " }, message: "Email is required"},
		{name: "no password", mutate: func(r *registerRequest) { r.Password = "" }, message: "Password is required"},
		{name: "short password", mutate: func(r *registerRequest) { r.Password = "abc" }, message: "Password must be at least 6 characters"},
		{name: "long password", mutate: func(r *registerRequest) { r.Password = strings.Repeat("p", 73) }, message: "Password is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			var httpErr *webutil.HTTPError
			require.True(t, errors.As(req.validate(), &httpErr))
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", normalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", normalizeEmail("   "))
}
