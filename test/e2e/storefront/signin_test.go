package storefront_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

func TestSignInWithoutTwoFactor(t *testing.T) {
	baseURL := setupContainer(t)
	client := shopsdk.NewClient(baseURL)
	bootstrapAdmin(t, client)
	signUp(t, client, "user@example.com", "Correct123!pw")

	store := shopsdk.NewKVSessionStore(shopsdk.NewMemoryStorage())
	rec := &recorder{}
	ctrl := shopsdk.NewController(client,
		shopsdk.WithSessionStore(store),
		shopsdk.WithNavigator(rec),
		shopsdk.WithNotifier(rec),
	)

	require.NoError(t, ctrl.SubmitCredentials(t.Context(), "user@example.com", "Correct123!pw"))
	require.Equal(t, shopsdk.StateFinalized, ctrl.State())
	require.Equal(t, []string{"/"}, rec.paths)

	sess, err := store.LoadSession()
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	me, err := client.WithToken(sess.Token).Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "user@example.com", me.Email)
}

func TestSignInWithTwoFactor(t *testing.T) {
	baseURL := setupContainer(t)
	client := shopsdk.NewClient(baseURL)
	bootstrapAdmin(t, client)

	user := signUp(t, client, "user@example.com", "Correct123!pw")
	secret, backupCodes := enableTwoFactor(t, client.WithToken(user.Token))

	t.Run("primary round opens a challenge", func(t *testing.T) {
		res, err := client.SignIn(t.Context(), shopsdk.SignInRequest{
			Email:    "user@example.com",
			Password: "Correct123!pw",
		})
		require.NoError(t, err)
		require.True(t, res.Require2FA)
		require.Empty(t, res.Token)
	})

	t.Run("wrong code keeps the challenge open", func(t *testing.T) {
		store := shopsdk.NewKVSessionStore(shopsdk.NewMemoryStorage())
		rec := &recorder{}
		ctrl := shopsdk.NewController(client, shopsdk.WithSessionStore(store), shopsdk.WithNotifier(rec))

		require.NoError(t, ctrl.SubmitCredentials(t.Context(), "user@example.com", "Correct123!pw"))
		require.True(t, ctrl.ChallengeOpen())

		err := ctrl.SubmitToken(t.Context(), "000000")
		var authErr *shopsdk.AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, shopsdk.StateChallengePending, ctrl.State())
		require.Equal(t, "invalid code", rec.notices[len(rec.notices)-1].Message)

		_, err = store.LoadSession()
		require.ErrorIs(t, err, shopsdk.ErrNoSession)

		require.NoError(t, ctrl.SubmitToken(t.Context(), currentCode(t, secret)))
		require.Equal(t, shopsdk.StateFinalized, ctrl.State())

		pref, err := store.LoadTwoFactorPreference()
		require.NoError(t, err)
		require.True(t, pref)
	})

	t.Run("backup code works once", func(t *testing.T) {
		req := shopsdk.SignInRequest{
			Email:          "user@example.com",
			Password:       "Correct123!pw",
			TwoFactorToken: backupCodes[0],
		}
		primary := shopsdk.SignInRequest{Email: req.Email, Password: req.Password}

		_, err := client.SignIn(t.Context(), primary)
		require.NoError(t, err)
		res, err := client.SignIn(t.Context(), req)
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)

		_, err = client.SignIn(t.Context(), primary)
		require.NoError(t, err)
		_, err = client.SignIn(t.Context(), req)
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("verify-2fa needs a pending challenge", func(t *testing.T) {
		other := signUp(t, client, "other@example.com", "Other123!pw")
		otherSecret, _ := enableTwoFactor(t, client.WithToken(other.Token))

		_, err := client.VerifyTwoFactor(t.Context(), shopsdk.VerifyTwoFactorRequest{
			Email:          "other@example.com",
			TwoFactorToken: currentCode(t, otherSecret),
		})
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

		res, err := client.SignIn(t.Context(), shopsdk.SignInRequest{Email: "other@example.com", Password: "Other123!pw"})
		require.NoError(t, err)
		require.True(t, res.Require2FA)

		sess, err := client.VerifyTwoFactor(t.Context(), shopsdk.VerifyTwoFactorRequest{
			Email:          "other@example.com",
			TwoFactorToken: currentCode(t, otherSecret),
		})
		require.NoError(t, err)
		require.NotEmpty(t, sess.Token)
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		bodies := map[string]string{}
		for name, req := range map[string]shopsdk.SignInRequest{
			"unknown email":  {Email: "nobody@example.com", Password: "Correct123!pw"},
			"wrong password": {Email: "user@example.com", Password: "nope"},
			"wrong code":     {Email: "user@example.com", Password: "Correct123!pw", TwoFactorToken: "000000"},
		} {
			_, err := client.SignIn(t.Context(), req)
			var apiErr *shopsdk.APIError
			require.ErrorAs(t, err, &apiErr, name)
			require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode, name)
			bodies[name] = apiErr.Message
		}
		require.Equal(t, bodies["unknown email"], bodies["wrong password"])
		require.Equal(t, bodies["wrong password"], bodies["wrong code"])
	})
}
