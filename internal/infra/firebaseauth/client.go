// internal/infra/firebaseauth/client.go
package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrInvalidToken = errors.New("firebaseauth: invalid token")

// Verified is the outcome of a successful ID-token verification: the opaque
// identity plus the optional contact claims denormalized into the cart doc.
type Verified struct {
	UID   string
	Email string
	Name  string
}

// Client wraps Firebase Auth for buyer-side ID-token verification.
type Client struct {
	auth *fbauth.Client
}

// NewClient initializes Firebase Auth for projectID.
// credentialsFile が空文字の場合、ADC を使用します。
func NewClient(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var (
		app *firebase.App
		err error
	)
	if credentialsFile != "" {
		app, err = firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsFile))
	} else {
		app, err = firebase.NewApp(ctx, conf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}

	log.Printf("✅ Firebase Auth ready (project: %s)", projectID)
	return &Client{auth: authClient}, nil
}

// VerifyIDToken verifies a Firebase ID token and extracts uid plus the
// optional email/name claims. Any verification failure means anonymous.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (Verified, error) {
	if c == nil || c.auth == nil {
		return Verified{}, errors.New("firebaseauth: client is nil")
	}

	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return Verified{}, ErrInvalidToken
	}

	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Verified{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return Verified{}, ErrInvalidToken
	}

	v := Verified{UID: uid}

	// email (optional)
	if raw, ok := token.Claims["email"]; ok {
		if s, ok2 := raw.(string); ok2 {
			v.Email = strings.TrimSpace(s)
		}
	}

	// display name (optional) - claim name differs between providers
	for _, key := range []string{"name", "fullName"} {
		if v.Name != "" {
			break
		}
		if raw, ok := token.Claims[key]; ok {
			if s, ok2 := raw.(string); ok2 {
				v.Name = strings.TrimSpace(s)
			}
		}
	}

	return v, nil
}
