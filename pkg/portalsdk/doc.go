/*
Package portalsdk provides a client SDK for the Sun Tower RWA portal API.

# Overview

The package is organized around three types:

  - SDKClient: unauthenticated operations (login, registration, health) and
    the factory for authenticated Sessions
  - Session: authenticated requests with automatic token refresh
  - Coordinator: client application state on top of a Session: the loaded
    profile, role predicates, background session monitoring, and restore
    across restarts

Create an SDKClient for the public surface:

	client := portalsdk.NewSDKClient("https://portal.example.com")

	health, err := client.GetLiveness(ctx)

	reg, err := client.SubmitRegistration(ctx, portalsdk.RegistrationRequest{
		OwnerName: "A. Rao",
		FlatNo:    "12B",
		Email:     "a.rao@example.com",
	})

Authenticate to get a Session:

	session, err := client.Login(ctx, email, password)
	profile, err := session.GetMyProfile(ctx)

Sessions refresh their access token automatically. The refresh token rotates
on every refresh, so a stored copy is stale as soon as the session refreshes;
persist tokens through the Coordinator instead of copying them out by hand.

# Coordinator

Interactive clients should use the Coordinator, which owns the session
lifecycle end to end:

	coord := portalsdk.NewCoordinator(client, tokenStore)

	if ok, _ := coord.Restore(ctx); !ok {
		err := coord.Login(ctx, email, password)
	}
	coord.StartMonitor()

	for ev := range coord.Events() {
		switch ev.Name {
		case portalsdk.EventSessionExpired:
			// show the login screen again
		}
	}

The monitor polls the server-side session so admin revocations (password
resets, account disabling) are noticed within minutes rather than at the next
token refresh.

# Error Handling

API failures are returned as *APIError with the HTTP status, a machine
readable code, and a description:

	var apiErr *portalsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == portalsdk.ErrorCodeAlreadyProcessed {
		// the registration was approved or rejected by someone else
	}
*/
package portalsdk
