package users_services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/config"
	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"
	users_repositories "taskhive/internal/features/users/repositories"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type OAuthService struct {
	userRepository *users_repositories.UserRepository
	userService    *UserService
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *OAuthService) googleConfig() *oauth2.Config {
	env := config.GetEnv()

	return &oauth2.Config{
		ClientID:     env.GoogleClientID,
		ClientSecret: env.GoogleClientSecret,
		RedirectURL:  env.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// AuthURL returns the Google consent page URL for the handoff redirect.
func (s *OAuthService) AuthURL(state string) string {
	return s.googleConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// HandleCallback exchanges the authorization code, resolves or creates
// the user, and returns a signed access token.
func (s *OAuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	oauthConfig := s.googleConfig()

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", apperrors.External("failed to exchange authorization code", err)
	}

	info, err := s.fetchUserInfo(ctx, oauthConfig, token)
	if err != nil {
		return "", err
	}

	user, err := s.findOrCreateUser(info)
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		return "", apperrors.Unauthenticated("user account is deactivated")
	}

	return s.userService.GenerateAccessToken(user)
}

func (s *OAuthService) fetchUserInfo(
	ctx context.Context,
	oauthConfig *oauth2.Config,
	token *oauth2.Token,
) (*googleUserInfo, error) {
	client := oauthConfig.Client(ctx, token)

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, apperrors.External("failed to fetch user info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.External(
			fmt.Sprintf("user info request returned status %d", resp.StatusCode), nil)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperrors.External("failed to decode user info", err)
	}

	if info.ID == "" || info.Email == "" {
		return nil, apperrors.External("incomplete user info from provider", nil)
	}

	return &info, nil
}

func (s *OAuthService) findOrCreateUser(info *googleUserInfo) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByGoogleID(info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// A password account with the same email gets linked instead of duplicated.
	user, err = s.userRepository.GetUserByEmail(info.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		if err := s.userRepository.LinkGoogleID(user.ID, info.ID); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		user.GoogleID = &info.ID
		return user, nil
	}

	googleID := info.ID
	user = &users_models.User{
		ID:        uuid.New(),
		Email:     info.Email,
		Name:      info.Name,
		GoogleID:  &googleID,
		Role:      users_enums.UserRoleTeamMember,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
