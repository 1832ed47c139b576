// Package app composes blog modules into one root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/penwright/blog/internal/services/blog/module"
	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	"github.com/penwright/blog/internal/services/blog/platform/requestmeta"
	"github.com/penwright/blog/internal/services/blog/platform/weberror"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	PublicModules       []module.Module
	AdminModules        []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups. Admin modules must
// mount under /backend/ and have their mutations guarded by a same-origin
// check.
func Compose(input ComposeInput) (http.Handler, error) {
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

	for _, feature := range input.AdminModules {
		if feature == nil {
			return nil, fmt.Errorf("admin module is nil")
		}
		if err := mountAdminModule(root, feature, seen, requireSameOrigin(input.RequestSchemePolicy)); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if routepath.IsBackend(prefix) {
		return fmt.Errorf("module %q has admin prefix %q in public group", feature.ID(), prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, nil)
}

func mountAdminModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(prefix, routepath.BackendPrefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.BackendPrefix, prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	if alias := strings.TrimSuffix(prefix, "/"); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// requireSameOrigin rejects state-changing requests whose Origin or Referer
// does not match the request's own origin.
func requireSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !httpx.IsMutation(r) || requestmeta.HasSameOriginProof(r, policy) {
				next.ServeHTTP(w, r)
				return
			}
			weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindForbidden, "core.error.forbidden", "missing same-origin proof"))
		})
	}
}
