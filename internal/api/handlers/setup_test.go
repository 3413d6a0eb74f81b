package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/nextsaas/internal/api/handlers"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/auth"
	"github.com/hugh/nextsaas/internal/invites"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/projects"
	"github.com/hugh/nextsaas/internal/testutil"
)

// setupTestRouter wires every handler the way the API router does, without
// the global middleware stack.
func setupTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	t.Helper()
	tc := testutil.NewTestContext(t)

	authHandler := handlers.NewAuthHandler(auth.NewService(tc.DB, tc.JWTService, auth.Options{}), nil)
	orgHandler := handlers.NewOrganizationHandler(orgs.NewService(tc.DB, nil, nil), nil)
	projectHandler := handlers.NewProjectHandler(projects.NewService(tc.DB, nil), nil)
	inviteHandler := handlers.NewInviteHandler(invites.NewService(tc.DB, nil, nil), nil)

	r := chi.NewRouter()
	r.Post("/users", authHandler.CreateAccount)
	r.Post("/sessions/password", authHandler.PasswordLogin)
	r.Post("/sessions/github", authHandler.GitHubLogin)
	r.Post("/password/recover", authHandler.RequestPasswordRecover)
	r.Post("/password/reset", authHandler.ResetPassword)
	r.Get("/invites/{inviteId}", inviteHandler.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Get("/profile", authHandler.Profile)
		r.Get("/pending-invites", inviteHandler.Pending)
		r.Post("/invites/{inviteId}/accept", inviteHandler.Accept)
		r.Post("/invites/{inviteId}/reject", inviteHandler.Reject)

		r.Post("/organizations", orgHandler.Create)
		r.Get("/organizations", orgHandler.List)
		r.Get("/organizations/{slug}", orgHandler.Get)
		r.Put("/organizations/{slug}", orgHandler.Update)
		r.Delete("/organizations/{slug}", orgHandler.Shutdown)
		r.Get("/organizations/{slug}/membership", orgHandler.Membership)
		r.Patch("/organizations/{slug}/owner", orgHandler.TransferOwnership)
		r.Put("/organizations/{slug}/avatar", orgHandler.SetAvatar)
		r.Get("/organizations/{slug}/billing", orgHandler.Billing)
		r.Get("/organizations/{slug}/members", orgHandler.ListMembers)
		r.Put("/organizations/{slug}/members/{memberId}", orgHandler.UpdateMember)
		r.Delete("/organizations/{slug}/members/{memberId}", orgHandler.RemoveMember)

		r.Post("/organizations/{slug}/projects", projectHandler.Create)
		r.Get("/organizations/{slug}/projects", projectHandler.List)
		r.Get("/organizations/{slug}/projects/{projectSlug}", projectHandler.Get)
		r.Put("/organizations/{slug}/projects/{projectId}", projectHandler.Update)
		r.Delete("/organizations/{slug}/projects/{projectId}", projectHandler.Delete)

		r.Post("/organizations/{slug}/invites", inviteHandler.Create)
		r.Get("/organizations/{slug}/invites", inviteHandler.List)
		r.Delete("/organizations/{slug}/invites/{inviteId}", inviteHandler.Revoke)
	})

	return r, tc
}

func serve(router *chi.Mux, t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, method, path, body, token))
	return rr
}

func serveRequest(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
