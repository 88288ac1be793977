package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
	"github.com/evergreen-centers/evergreen/pkg/middleware"
)

func TestWithActor_ResolvesAndStores(t *testing.T) {
	t.Parallel()

	want := authz.Actor{
		ID:       uuid.New(),
		Name:     "Dana Reyes",
		Role:     authz.RoleCorporateAdmin,
		Facility: authz.FacilityOrganization,
	}

	router := mux.NewRouter()
	router.Use(middleware.WithActor(func(r *http.Request) (authz.Actor, error) {
		return want, nil
	}))
	router.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		actor, err := composables.UseActor(r.Context())
		require.NoError(t, err)
		assert.Equal(t, want, actor)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithActor_RejectsUnresolved(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.Use(middleware.WithActor(func(r *http.Request) (authz.Actor, error) {
		return authz.Actor{}, errors.New("no token")
	}))
	reached := false
	router.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequestLogger_AttachesEntry(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		entry := composables.UseLogger(r.Context())
		require.NotNil(t, entry)
		assert.Contains(t, entry.Data, "request_id")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
