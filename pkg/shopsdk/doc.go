/*
Package shopsdk provides a client SDK for the storefront admin API and the
sign-in controller that drives its two-round authentication.

# Client vs AuthClient

Client covers the anonymous endpoints: sign-in, sign-up, bootstrap, health
and the public category listing.

	client := shopsdk.NewClient("https://shop.example.com")
	cats, err := client.ListCategories(ctx)

WithToken returns an AuthClient that sends a session token as a bearer token:

	admin := client.WithToken(session.Token)
	cat, err := admin.CreateCategory(ctx, shopsdk.CategoryRequest{Name: "Shoes"})

# Sign-in Controller

Controller runs the exchange a sign-in form needs. The primary round posts
email and password. An account with two-factor enabled answers with
{"require2FA": true}; the controller then waits for a code and posts the same
credentials again with twoFactorToken set.

	store := shopsdk.NewKVSessionStore(shopsdk.NewFileStorage(path))
	ctrl := shopsdk.NewController(client,
		shopsdk.WithSessionStore(store),
		shopsdk.WithSessionProvider(provider),
		shopsdk.WithRedirect(shopsdk.RedirectFromURL(pageURL)),
	)

	if err := ctrl.SubmitCredentials(ctx, email, password); err != nil {
		return err
	}
	if ctrl.ChallengeOpen() {
		err = ctrl.SubmitToken(ctx, code)
	}

States move as follows:

	Idle -> AwaitingPrimaryResult -> Finalized
	                              -> ChallengePending <-> AwaitingChallengeResult -> Finalized
	                              -> Failed -> Idle
	ChallengePending -> Idle (Dismiss)
	Finalized -> Idle (Reset)

A submit made while a request is outstanding returns ErrSubmissionInFlight
and sends nothing. Credentials live only in controller memory and are cleared
once the sign-in finalizes, is dismissed, or fails.

# Error Handling

Controller methods return one of:

  - *ValidationError: a required field was empty; nothing was sent
  - *AuthError: the server rejected the credentials or the code
  - *TransportError: network failure, timeout or unexpected response
  - ErrSubmissionInFlight, ErrInvalidTransition

Every failure is also passed to the Notifier. Client methods return *APIError
for any non-success status.

# Persistence

KVSessionStore keeps the session under "userInfo" and the two-factor
preference under "enable2FA" in any Storage. FileStorage writes a JSON file
atomically; MemoryStorage is for tests and short-lived processes.

# Thread Safety

Client, AuthClient, Controller, MemoryStorage, FileStorage and
MemorySessionProvider are safe for concurrent use.
*/
package shopsdk
