// Package binary locates the native reminders helper binary.
//
// Resolution is fail-closed: a candidate is accepted only if it exists, sits
// under an allowlisted path prefix, and is executable. The allowlist defends
// against a look-alike binary planted in a writable directory.
package binary

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// Name is the expected helper binary filename.
	Name = "reminders-bridge"

	// MockEnvVar enables mock mode: resolution short-circuits to MockPath
	// without touching the filesystem, so the rest of the pipeline is
	// testable without the real helper present. Only resolution is mocked;
	// the caller is expected to pair this with an injected executor, since
	// running a real OSCommandExecutor against the sentinel fails to spawn.
	MockEnvVar = "REMINDERS_BRIDGE_MOCK"

	// MockPath is the sentinel path returned in mock mode. Nothing
	// executable lives there.
	MockPath = "/mock/reminders-bridge"
)

// Config describes where the helper binary may be found.
type Config struct {
	// Candidates are absolute paths probed in order.
	Candidates []string
	// AllowedPrefixes are the only directory prefixes a candidate may
	// resolve under.
	AllowedPrefixes []string
}

// DefaultConfig returns the compiled-in candidate list: next to the running
// executable, in the executable's swift/bin subtree, and in the standard
// libexec locations.
func DefaultConfig() Config {
	var candidates, prefixes []string

	if exePath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(execDir, Name),
			filepath.Join(execDir, "swift", "bin", Name),
		)
		prefixes = append(prefixes, execDir)
	}

	candidates = append(candidates,
		filepath.Join("/usr/local/libexec", Name),
		filepath.Join("/opt/homebrew/libexec", Name),
	)
	prefixes = append(prefixes, "/usr/local/libexec", "/opt/homebrew/libexec")

	return Config{Candidates: candidates, AllowedPrefixes: prefixes}
}

// fileSystem is the minimal filesystem surface resolution needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
}

type osFS struct{}

func (osFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Resolver finds and validates the helper binary path. The result is
// memoized: the filesystem is probed at most once per Resolver lifetime.
type Resolver struct {
	cfg  Config
	fs   fileSystem
	mock bool

	once sync.Once
	path string
	err  error
}

// NewResolver creates a production Resolver using the real filesystem.
// Mock mode is read from the environment at construction time.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg, fs: osFS{}, mock: os.Getenv(MockEnvVar) == "1"}
}

// NewResolverWithFS creates a Resolver with a custom filesystem (for testing).
func NewResolverWithFS(cfg Config, fs fileSystem, mock bool) *Resolver {
	return &Resolver{cfg: cfg, fs: fs, mock: mock}
}

// Resolve returns the validated helper binary path. Subsequent calls return
// the cached result without re-touching the filesystem.
func (r *Resolver) Resolve() (string, error) {
	r.once.Do(func() {
		r.path, r.err = r.resolve()
	})
	return r.path, r.err
}

func (r *Resolver) resolve() (string, error) {
	if r.mock {
		return MockPath, nil
	}

	var attempted []string
	var notExecutable string
	for _, candidate := range r.cfg.Candidates {
		attempted = append(attempted, candidate)

		info, err := r.fs.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !r.allowed(candidate) {
			// Exists but outside allowed directories: reject, never fall
			// back to trusting it.
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			if notExecutable == "" {
				notExecutable = candidate
			}
			continue
		}
		return candidate, nil
	}

	if notExecutable != "" {
		return "", &NotExecutableError{Path: notExecutable}
	}
	return "", &NotFoundError{Attempted: attempted}
}

func (r *Resolver) allowed(candidate string) bool {
	cleaned := filepath.Clean(candidate)
	for _, prefix := range r.cfg.AllowedPrefixes {
		prefix = filepath.Clean(prefix)
		if cleaned == prefix || strings.HasPrefix(cleaned, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
