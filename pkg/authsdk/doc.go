/*
Package authsdk provides a client SDK for the identity service.

# SDKClient vs Session

  - SDKClient: public operations (signup, verification, signin, bootstrap, health)
  - Session: operations that need a bearer token

Create an SDKClient to interact with public endpoints:

	client := authsdk.NewSDKClient("https://identity.example.com")

	// Register; the account is disabled until verified
	account, err := client.Signup(ctx, authsdk.SignupRequest{
		Username: "alice",
		Password: "Sup3r$ecret",
		Email:    "alice@example.com",
	})

	// Follow the emailed link
	account, err = client.Verify(ctx, code)

	// Sign in with either the email or the username
	session, err := client.Authenticate(ctx, "alice@example.com", "Sup3r$ecret")

Use a Session for gated operations:

	me, err := session.Me(ctx)
	inv, err := session.Invite(ctx, "bob@example.com")

Sessions do not refresh themselves. Refresh exchanges the token for a new
one carrying the account's current roles:

	if time.Until(session.ExpiresAt()) < time.Minute {
		err = session.Refresh(ctx)
	}

# Error Handling

Non-2xx responses are returned as *APIError:

	_, err := client.Signup(ctx, req)
	if authsdk.IsCode(err, authsdk.ErrorCodeConflict) {
		// username or email already taken
	}

# Thread Safety

Sessions are safe for concurrent use.
*/
package authsdk
