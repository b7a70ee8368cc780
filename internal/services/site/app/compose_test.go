package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/northlinerail/website/internal/services/site/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string { return s.id }

func (s stubModule) Mount() (module.Mount, error) { return s.mount, s.err }

func status(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	})
}

var adminCreds = Credentials{Username: "ops", Password: "s3cret"}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: status(http.StatusOK)}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one", Handler: status(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsDuplicateExactPath(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "metadata", mount: module.Mount{Paths: []string{"/robots.txt"}, Handler: status(http.StatusOK)}},
			stubModule{id: "other", mount: module.Mount{Paths: []string{"robots.txt"}, Handler: status(http.StatusOK)}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate path error")
	}
}

func TestComposeRejectsNilPublicModule(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{PublicModules: []module.Module{nil}})
	if err == nil {
		t.Fatalf("expected nil public module error")
	}
}

func TestComposeRejectsNilProtectedModule(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{ProtectedModules: []module.Module{nil}, Credentials: adminCreds})
	if err == nil {
		t.Fatalf("expected nil protected module error")
	}
}

func TestComposeRejectsMountWithoutRoutes(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "empty", mount: module.Mount{Handler: status(http.StatusOK)}}},
	})
	if err == nil {
		t.Fatalf("expected missing prefix error")
	}
}

func TestComposeRejectsProtectedPrefixInPublicGroup(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "admin", mount: module.Mount{Prefix: "/admin/", Handler: status(http.StatusOK)}}},
	})
	if err == nil {
		t.Fatalf("expected protected prefix error")
	}
}

func TestComposeRejectsPublicPrefixInProtectedGroup(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		Credentials:      adminCreds,
		ProtectedModules: []module.Module{stubModule{id: "pages", mount: module.Mount{Prefix: "/pages/", Handler: status(http.StatusOK)}}},
	})
	if err == nil {
		t.Fatalf("expected public prefix error")
	}
}

func TestComposeRequiresCredentialsForProtectedModules(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		ProtectedModules: []module.Module{stubModule{id: "admin", mount: module.Mount{Prefix: "/admin/", Handler: status(http.StatusOK)}}},
	})
	if err == nil {
		t.Fatalf("expected missing credentials error")
	}
}

func TestComposeWrapsProtectedModulesWithBasicAuth(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		Credentials:      adminCreds,
		Realm:            "Northline Rail admin",
		ProtectedModules: []module.Module{stubModule{id: "admin", mount: module.Mount{Prefix: "/admin/", Handler: status(http.StatusNoContent)}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		name     string
		user     string
		password string
		setAuth  bool
		want     int
	}{
		{name: "missing", want: http.StatusUnauthorized},
		{name: "wrong password", user: "ops", password: "nope", setAuth: true, want: http.StatusUnauthorized},
		{name: "wrong user", user: "root", password: "s3cret", setAuth: true, want: http.StatusUnauthorized},
		{name: "valid", user: "ops", password: "s3cret", setAuth: true, want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/inquiries", nil)
			if tc.setAuth {
				req.SetBasicAuth(tc.user, tc.password)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if tc.want == http.StatusUnauthorized && rr.Header().Get("WWW-Authenticate") != `Basic realm="Northline Rail admin", charset="UTF-8"` {
				t.Fatalf("WWW-Authenticate = %q", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestComposeRoutesExactPathsBesideRootSubtree(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "pages", mount: module.Mount{Prefix: "/", Handler: status(http.StatusOK)}},
			stubModule{id: "metadata", mount: module.Mount{Paths: []string{"/robots.txt"}, Handler: status(http.StatusAccepted)}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for path, want := range map[string]int{"/robots.txt": http.StatusAccepted, "/about": http.StatusOK} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, want)
		}
	}
}
