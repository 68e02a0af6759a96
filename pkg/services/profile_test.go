package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blog-cms/pkg/apperr"
	"blog-cms/pkg/models"
	"blog-cms/pkg/services"
)

func TestProfileRoundTrip(t *testing.T) {
	setupTestRepo(t)

	in := models.AuthorProfile{
		Name:       "Jane Doe",
		Avatar:     "/static/images/avatar.png",
		Occupation: "Software Engineer",
		Email:      "jane@example.com",
		Twitter:    "https://twitter.com/jane",
		GitHub:     "https://github.com/jane",
	}
	require.NoError(t, services.SaveProfile(in, "Writes about functional programming."))

	out, body, err := services.LoadProfile()
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, "Writes about functional programming.", body)
}

func TestSaveProfileRejectsInvalid(t *testing.T) {
	setupTestRepo(t)

	err := services.SaveProfile(models.AuthorProfile{Email: "broken"}, "")
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, _, err = services.LoadProfile()
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
