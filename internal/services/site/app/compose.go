// Package app composes site modules into one root handler.
package app

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

// Credentials guard the protected module group with HTTP basic auth.
type Credentials struct {
	Username string
	Password string
}

// Configured reports whether both username and password are set.
func (c Credentials) Configured() bool {
	return strings.TrimSpace(c.Username) != "" && c.Password != ""
}

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	PublicModules    []module.Module
	ProtectedModules []module.Module
	Credentials      Credentials
	// Realm is reported in basic auth challenges.
	Realm string
}

// Composer wires root mux mounts and route-group auth behavior.
type Composer struct{}

// Compose builds a root HTTP handler from module groups. Protected modules
// are refused when no credentials are configured.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	if len(input.ProtectedModules) > 0 && !input.Credentials.Configured() {
		return nil, fmt.Errorf("protected modules require admin credentials")
	}
	wrap := requireBasicAuth(input.Credentials, input.Realm)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	patterns []string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	for _, pattern := range patterns {
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates route %q owned by module %q", feature.ID(), pattern, previous)
		}
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, pattern := range patterns {
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, patterns, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		if isProtectedPattern(pattern) {
			return fmt.Errorf("module %q has protected route %q in public group", feature.ID(), pattern)
		}
	}
	return mountModule(root, feature, mount, patterns, seen, nil)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, patterns, err := resolveMount(feature)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		if !isProtectedPattern(pattern) {
			return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AdminPrefix, pattern)
		}
	}
	return mountModule(root, feature, mount, patterns, seen, wrap)
}

func isProtectedPattern(pattern string) bool {
	return strings.HasPrefix(pattern, routepath.AdminPrefix)
}

func resolveMount(feature module.Module) (module.Mount, []string, error) {
	if feature == nil {
		return module.Mount{}, nil, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	var patterns []string
	if prefix := normalizePrefix(mount.Prefix); prefix != "" {
		patterns = append(patterns, prefix)
	}
	for _, path := range mount.Paths {
		exact := normalizePath(path)
		if exact == "" {
			return module.Mount{}, nil, fmt.Errorf("mount module %q: empty path", feature.ID())
		}
		patterns = append(patterns, exact)
	}
	if len(patterns) == 0 {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: prefix or paths are required", feature.ID())
	}
	return mount, patterns, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func requireBasicAuth(creds Credentials, realm string) func(http.Handler) http.Handler {
	if realm == "" {
		realm = "admin"
	}
	challenge := fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm)
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !credentialsMatch(creds, username, password) {
				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// credentialsMatch compares both fields without short-circuiting.
func credentialsMatch(creds Credentials, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password))
	return userOK&passOK == 1
}
