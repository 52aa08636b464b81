package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/domain/model/auth"
	"github.com/forgelab/promptforge/pkg/service/authsvc"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/utils/errutil"
)

type AuthUseCase = usecase.AuthUseCaseInterface

const (
	cookieTokenID     = "token_id"
	cookieTokenSecret = "token_secret"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	Message           string `json:"message"`
	AlreadyRegistered bool   `json:"already_registered"`
}

type userMeResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Messages shown to the user after a sign-up attempt. A duplicate
// account is not an error from the provider's point of view; it is
// reported as a distinct outcome instead.
const (
	msgSignUpOK        = "Account created. Check your email to confirm your address."
	msgSignUpDuplicate = "An account with this email already exists. Please sign in."
)

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// writeAuthError maps auth failures onto HTTP statuses. Provider
// errors keep their own status and message so the user sees the
// service's wording unchanged.
func writeAuthError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, usecase.ErrCredentialsRequired) {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var pe *authsvc.ProviderError
	if errors.As(err, &pe) {
		status := pe.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		errutil.WriteHTTP(ctx, w, pe, status, pe.StatusCode, "")
		return
	}

	errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
}

func decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerr.Wrap(err, "failed to decode credentials")
	}
	return &req, nil
}

// authSignUpHandler registers a new account with the auth service
func authSignUpHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCredentials(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		outcome, err := authUC.SignUp(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(r.Context(), w, err)
			return
		}

		resp := signUpResponse{Message: msgSignUpOK}
		if outcome.AlreadyRegistered {
			resp = signUpResponse{Message: msgSignUpDuplicate, AlreadyRegistered: true}
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

// authLoginHandler signs the user in and sets the session cookie pair
func authLoginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCredentials(r)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		token, err := authUC.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(r.Context(), w, err)
			return
		}

		setSessionCookies(w, r, token)

		writeJSON(r.Context(), w, http.StatusOK, userMeResponse{
			Sub:   token.Sub,
			Email: token.Email,
		})
	}
}

// authLogoutHandler handles user logout
func authLogoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get token ID from cookie
		tokenIDCookie, err := r.Cookie(cookieTokenID)
		if err == nil {
			tokenID := auth.TokenID(tokenIDCookie.Value)
			if err := authUC.Logout(r.Context(), tokenID); err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to logout"), http.StatusInternalServerError)
				return
			}
		}

		clearSessionCookies(w, r)

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// authMeHandler returns current user information
func authMeHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// For NoAuthn mode, get user info from ValidateToken (which returns the configured user)
		if authUC.IsNoAuthn() {
			token, err := authUC.ValidateToken(r.Context(), "", "")
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
				return
			}
			writeJSON(r.Context(), w, http.StatusOK, userMeResponse{
				Sub:   token.Sub,
				Email: token.Email,
			})
			return
		}

		// Get tokens from cookies
		tokenIDCookie, err := r.Cookie(cookieTokenID)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		tokenSecretCookie, err := r.Cookie(cookieTokenSecret)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		tokenID := auth.TokenID(tokenIDCookie.Value)
		tokenSecret := auth.TokenSecret(tokenSecretCookie.Value)

		// Validate token
		token, err := authUC.ValidateToken(r.Context(), tokenID, tokenSecret)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusUnauthorized)
			return
		}

		// Return user info
		writeJSON(r.Context(), w, http.StatusOK, userMeResponse{
			Sub:   token.Sub,
			Email: token.Email,
		})
	}
}

func setSessionCookies(w http.ResponseWriter, r *http.Request, token *auth.Token) {
	tokenIDCookie := &http.Cookie{
		Name:     cookieTokenID,
		Value:    token.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	}

	tokenSecretCookie := &http.Cookie{
		Name:     cookieTokenSecret,
		Value:    token.Secret.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  token.ExpiresAt,
	}

	http.SetCookie(w, tokenIDCookie)
	http.SetCookie(w, tokenSecretCookie)
}

func clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{cookieTokenID, cookieTokenSecret} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
