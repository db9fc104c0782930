package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	pathSignIn         = "/auth/sign-in"
	pathSignOut        = "/auth/sign-out"
	pathChangePassword = "/common/change-password"
	pathUpdateProfile  = "/common/update-profile"
	pathToggleNotify   = "/common/toggle-notification"
	pathToggleAccount  = "/common/toggle-account"
)

// AuthRepository exchanges credentials with the API.
type AuthRepository struct {
	api Upstream
}

// NewAuthRepository constructs the repository.
func NewAuthRepository(api Upstream) *AuthRepository {
	return &AuthRepository{api: api}
}

// SignIn exchanges an email and password for an API credential.
func (r *AuthRepository) SignIn(ctx context.Context, req models.SignInRequest) (models.SignInGrant, error) {
	var grant models.SignInGrant
	_, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathSignIn,
		Body:     req,
		Fallback: "Login failed.",
	}, &grant)
	return grant, err
}

// SignOut revokes the credential upstream.
func (r *AuthRepository) SignOut(ctx context.Context, token string) error {
	_, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: pathSignOut, Body: struct{}{}, Token: token, Fallback: "Logout failed"}, nil)
	return err
}

// Profile returns the account behind the credential. Employees share the admin profile endpoint.
func (r *AuthRepository) Profile(ctx context.Context, token string, role models.UserRole) (models.Profile, error) {
	path := "/admin/get-profile"
	if role == models.RoleLaboratory {
		path = "/laboratory/get-profile"
	}
	var out models.Profile
	_, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: path, Token: token, Fallback: "Failed to fetch profile"}, &out)
	return out, err
}

// ChangePassword replaces the account password.
func (r *AuthRepository) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathChangePassword,
		Body:     req,
		Token:    token,
		Fallback: "Password update failed",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Password changed successfully"), nil
}

// UpdateProfile saves the account settings with an optional new profile image.
func (r *AuthRepository) UpdateProfile(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error) {
	res, err := r.api.DoMultipart(ctx, apiclient.MultipartRequest{
		Path:     pathUpdateProfile,
		Token:    token,
		Fields:   fields,
		Files:    files,
		Fallback: "Update failed",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Profile updated successfully"), nil
}

// ToggleNotifications flips the account's notification preference.
func (r *AuthRepository) ToggleNotifications(ctx context.Context, token string) (string, error) {
	return r.toggle(ctx, token, pathToggleNotify, "Notification preference updated")
}

// ToggleAccount flips the account between active and inactive.
func (r *AuthRepository) ToggleAccount(ctx context.Context, token string) (string, error) {
	return r.toggle(ctx, token, pathToggleAccount, "Account status updated")
}

func (r *AuthRepository) toggle(ctx context.Context, token, path, success string) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: path, Body: struct{}{}, Token: token, Fallback: "Failed to update setting"}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, success), nil
}
