package handlers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/models"
)

func TestSettings_UpsertPreservesID(t *testing.T) {
	env := newTestEnv(t)

	first := decode[models.Setting](t, env.do(t, jsonRequest(t, "PUT", "/api/settings/store_name", models.UpdateSettingRequest{Value: "Clay & Co"})))
	assert.Equal(t, "store_name", first.Key)
	assert.Equal(t, "Clay & Co", first.Value)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second := decode[models.Setting](t, env.do(t, jsonRequest(t, "PUT", "/api/settings/store_name", models.UpdateSettingRequest{Value: "Clay & Sons"})))
	assert.Equal(t, first.ID, second.ID, "overwriting a key must keep the original record id")
	assert.Equal(t, "Clay & Sons", second.Value)

	got := decode[models.Setting](t, env.do(t, jsonRequest(t, "GET", "/api/settings/store_name", nil)))
	assert.Equal(t, "Clay & Sons", got.Value)

	list := decode[[]models.Setting](t, env.do(t, jsonRequest(t, "GET", "/api/settings", nil)))
	assert.Len(t, list, 1)
}

func TestSettings_GetUnknownKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, jsonRequest(t, "GET", "/api/settings/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGallery_UploadListDelete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, multipartRequest(t, "POST", "/api/gallery", nil, []upload{
		{field: "image", filename: "studio.png", content: pngBytes},
	}))
	require.Equal(t, http.StatusCreated, w.Code)
	img := decode[models.GalleryImage](t, w)
	assert.Equal(t, "studio.png", img.Filename)
	assert.True(t, env.files.IsLocal(img.Path))

	_, err := os.Stat(filepath.Join(env.dir, filepath.Base(img.Path)))
	require.NoError(t, err)

	list := decode[[]models.GalleryImage](t, env.do(t, jsonRequest(t, "GET", "/api/gallery", nil)))
	require.Len(t, list, 1)

	del := env.do(t, jsonRequest(t, "DELETE", "/api/gallery/"+img.ID.String(), nil))
	require.Equal(t, http.StatusOK, del.Code)

	_, err = os.Stat(filepath.Join(env.dir, filepath.Base(img.Path)))
	assert.True(t, os.IsNotExist(err), "deleting the record should remove the stored file")

	assert.Empty(t, decode[[]models.GalleryImage](t, env.do(t, jsonRequest(t, "GET", "/api/gallery", nil))))
}

func TestGallery_RejectsNonImageExtension(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, multipartRequest(t, "POST", "/api/gallery", nil, []upload{
		{field: "image", filename: "notes.txt", content: []byte("plain text")},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)

	fields := productFields("Mug")
	fields["image"] = "https://cdn.example.com/mug.png"
	product := decode[models.Product](t, env.do(t, multipartRequest(t, "POST", "/api/products", fields, nil)))
	base := "/api/products/" + product.ID.String() + "/reviews"

	t.Run("create and list", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "POST", base, models.CreateReviewRequest{
			CustomerName: "Ada",
			Rating:       5,
			Comment:      "holds coffee admirably",
		}))
		require.Equal(t, http.StatusCreated, w.Code)
		r := decode[models.Review](t, w)
		assert.Equal(t, product.ID, r.ProductID)
		assert.Equal(t, 5, r.Rating)

		list := decode[[]models.Review](t, env.do(t, jsonRequest(t, "GET", base, nil)))
		assert.Len(t, list, 1)
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			w := env.do(t, jsonRequest(t, "POST", base, models.CreateReviewRequest{
				CustomerName: "Ada",
				Rating:       rating,
				Comment:      "x",
			}))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "POST", "/api/products/"+uuid.NewString()+"/reviews", models.CreateReviewRequest{
			CustomerName: "Ada",
			Rating:       4,
			Comment:      "x",
		}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		list := decode[[]models.Review](t, env.do(t, jsonRequest(t, "GET", base, nil)))
		require.NotEmpty(t, list)
		w := env.do(t, jsonRequest(t, "DELETE", "/api/reviews/"+list[0].ID.String(), nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]models.Review](t, env.do(t, jsonRequest(t, "GET", base, nil))))
	})
}

func TestWishlist(t *testing.T) {
	env := newTestEnv(t)

	fields := productFields("Mug")
	fields["image"] = "https://cdn.example.com/mug.png"
	product := decode[models.Product](t, env.do(t, multipartRequest(t, "POST", "/api/products", fields, nil)))
	userID := uuid.NewString()

	t.Run("add and list", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "POST", "/api/wishlist", models.AddWishlistItemRequest{
			UserID:    userID,
			ProductID: product.ID.String(),
		}))
		require.Equal(t, http.StatusCreated, w.Code)

		list := decode[[]models.WishlistItem](t, env.do(t, jsonRequest(t, "GET", "/api/users/"+userID+"/wishlist", nil)))
		require.Len(t, list, 1)
		assert.Equal(t, product.ID, list[0].ProductID)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		w := env.do(t, jsonRequest(t, "POST", "/api/wishlist", models.AddWishlistItemRequest{
			UserID:    userID,
			ProductID: uuid.NewString(),
		}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		list := decode[[]models.WishlistItem](t, env.do(t, jsonRequest(t, "GET", "/api/users/"+userID+"/wishlist", nil)))
		require.NotEmpty(t, list)
		w := env.do(t, jsonRequest(t, "DELETE", "/api/wishlist/"+list[0].ID.String(), nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]models.WishlistItem](t, env.do(t, jsonRequest(t, "GET", "/api/users/"+userID+"/wishlist", nil))))
	})
}
