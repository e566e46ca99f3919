package rest

import "strings"

// orgFromPath returns the organization this client is bound to; patch
// paths never carry the organization login themselves (§4.4 Path is
// display-oriented dotted notation scoped to one organization's tree),
// so the login comes from the client's own binding instead.
func (c *Client) orgFromPath(_ string) string {
	return c.org
}

// ownerRepoFromPath extracts the repository name from a patch path of the
// form "repositories[name]" or "repositories[name].<child>...", pairing it
// with the client's own organization as owner.
func (c *Client) ownerRepoFromPath(path string) (owner, repo string) {
	return c.org, bracketValue(path, "repositories[")
}

// environmentFromPath extracts both the repository and environment name
// from a patch path of the form
// "repositories[repo].environments[env]" or
// "repositories[repo].environments[env].<child>...".
func (c *Client) environmentFromPath(path string) (owner, repo, env string) {
	owner, repo = c.ownerRepoFromPath(path)

	return owner, repo, bracketValue(path, "environments[")
}

// bracketValue returns the contents of the first "marker...]" occurrence in
// path, or "" if marker isn't present.
func bracketValue(path, marker string) string {
	i := strings.Index(path, marker)
	if i < 0 {
		return ""
	}

	rest := path[i+len(marker):]

	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return ""
	}

	return rest[:end]
}
