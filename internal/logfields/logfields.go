package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepo    = "repository"
	KeyRemote  = "remote"
	KeyBranch  = "branch"
	KeyPath    = "path"
	KeyFile    = "file"
	KeySrc     = "src"
	KeyDst     = "dst"
	KeyRelease = "release"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(name string) slog.Attr { return slog.String(KeyRepo, name) }
func Remote(url string) slog.Attr      { return slog.String(KeyRemote, url) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Src(s string) slog.Attr           { return slog.String(KeySrc, s) }
func Dst(d string) slog.Attr           { return slog.String(KeyDst, d) }
func Release(r string) slog.Attr       { return slog.String(KeyRelease, r) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
