// Package gitscm derives scm coordinates from the git repository that
// contains a build root.
package gitscm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/vk/orgdefaults/internal/metadata"
)

// DefaultRemote is the remote consulted by Infer.
const DefaultRemote = "origin"

// ErrNoRemote indicates that dir is not inside a git repository, or that the
// repository has no usable remote.
var ErrNoRemote = errors.New("no git remote found")

// Infer opens the repository containing dir (searching parent directories)
// and converts the URL of the named remote into scm coordinates.
func Infer(dir, remote string) (metadata.Scm, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return metadata.Scm{}, fmt.Errorf("%w: %s is not in a git repository", ErrNoRemote, dir)
	}
	if err != nil {
		return metadata.Scm{}, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	r, err := repo.Remote(remote)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return metadata.Scm{}, fmt.Errorf("%w: remote %q does not exist", ErrNoRemote, remote)
	}
	if err != nil {
		return metadata.Scm{}, fmt.Errorf("failed to read remote %q: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return metadata.Scm{}, fmt.Errorf("%w: remote %q has no URL", ErrNoRemote, remote)
	}
	return FromRemoteURL(urls[0]), nil
}

// FromRemoteURL maps a git remote URL onto scm coordinates. HTTPS, ssh://
// and scp-like (git@host:path) URLs yield a browsable URL and both
// connection strings; anything else is kept as the read-only connection.
func FromRemoteURL(raw string) metadata.Scm {
	host, path, ok := splitRemote(raw)
	if !ok {
		return metadata.Scm{Connection: "scm:git:" + raw}
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	return metadata.Scm{
		Connection:          fmt.Sprintf("scm:git:https://%s/%s.git", host, path),
		DeveloperConnection: fmt.Sprintf("scm:git:git@%s:%s.git", host, path),
		URL:                 fmt.Sprintf("https://%s/%s", host, path),
	}
}

func splitRemote(raw string) (host, path string, ok bool) {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			return "", "", false
		}
		switch u.Scheme {
		case "https", "http", "ssh", "git":
			return u.Hostname(), u.Path, u.Path != "" && u.Path != "/"
		}
		return "", "", false
	}

	// scp-like syntax: [user@]host:path
	at := strings.Index(raw, "@")
	colon := strings.Index(raw, ":")
	if colon <= at+1 || strings.ContainsAny(raw[:colon], "/") {
		return "", "", false
	}
	return raw[at+1 : colon], raw[colon+1:], raw[colon+1:] != ""
}
