package storefront_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

func TestCategories(t *testing.T) {
	baseURL := setupContainer(t)
	client := shopsdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)
	user := client.WithToken(signUp(t, client, "user@example.com", "Correct123!pw").Token)

	created, err := admin.CreateCategory(t.Context(), "Running Shoes")
	require.NoError(t, err)
	require.Equal(t, "running-shoes", created.Category.Slug)

	t.Run("anyone can list", func(t *testing.T) {
		cats, err := client.ListCategories(t.Context())
		require.NoError(t, err)
		require.Len(t, cats, 1)

		cat, err := client.GetCategory(t.Context(), created.Category.ID)
		require.NoError(t, err)
		require.Equal(t, "Running Shoes", cat.Name)
	})

	t.Run("writes need an admin", func(t *testing.T) {
		_, err := user.CreateCategory(t.Context(), "Hats")
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

		_, err = client.WithToken("not-a-token").CreateCategory(t.Context(), "Hats")
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := admin.CreateCategory(t.Context(), "Running Shoes")
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("update and delete", func(t *testing.T) {
		res, err := admin.UpdateCategory(t.Context(), created.Category.ID, "Trail Shoes")
		require.NoError(t, err)
		require.Equal(t, "trail-shoes", res.Category.Slug)

		_, err = admin.DeleteCategory(t.Context(), created.Category.ID)
		require.NoError(t, err)

		_, err = client.GetCategory(t.Context(), created.Category.ID)
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestUpload(t *testing.T) {
	baseURL := setupContainer(t)
	client := shopsdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)

	t.Run("stored and served", func(t *testing.T) {
		res, err := admin.Upload(t.Context(), "shoe.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(res.Path, "/images/"))

		resp, err := http.Get(baseURL + res.Path)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(body))
	})

	t.Run("too large", func(t *testing.T) {
		_, err := admin.Upload(t.Context(), "big.png", bytes.NewReader(make([]byte, 128*1024)))
		var apiErr *shopsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	})
}
