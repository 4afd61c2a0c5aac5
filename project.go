package ctx

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// dataDirName is the per-project directory created under the user data
// directory, named ctx-agent to avoid clashing with unrelated tools.
const dataDirName = "ctx-agent"

// ProjectDataDir resolves the data directory for projectRoot: the user
// data directory, a ctx-agent subdirectory, and a hash of the project's
// canonical absolute path, per spec.md §6's persisted layout.
func ProjectDataDir(projectRoot string) (string, error) {
	canonical, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", ctxerr.WrapPath(ctxerr.KindIO, "resolve project root", projectRoot, err)
	}
	canonical, err = filepath.EvalSymlinks(canonical)
	if err != nil {
		return "", ctxerr.WrapPath(ctxerr.KindNotFound, "project root not found", projectRoot, err)
	}

	info, err := os.Stat(canonical)
	if err != nil || !info.IsDir() {
		return "", ctxerr.New(ctxerr.KindNotFound, "project root is not a directory: "+canonical)
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", ctxerr.Wrap(ctxerr.KindIO, "resolve user data directory", err)
	}

	sum := sha256.Sum256([]byte(canonical))
	key := hex.EncodeToString(sum[:])[:16]
	return filepath.Join(base, dataDirName, key), nil
}

// EnsureProjectDataDir resolves and creates the project's data directory.
func EnsureProjectDataDir(projectRoot string) (string, error) {
	dir, err := ProjectDataDir(projectRoot)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ctxerr.WrapPath(ctxerr.KindIO, "create project data directory", dir, err)
	}
	return dir, nil
}
