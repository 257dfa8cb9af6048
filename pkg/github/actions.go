package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/ghkeeper/pkg/sealbox"
)

// PublicKey is the repository key used to seal Actions secrets.
type PublicKey struct {
	KeyID string `json:"key_id"`
	Key   string `json:"key"`
}

// Variable is an Actions variable.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Environment is a deployment environment update body. Fields such as
// wait_timer, reviewers and deployment_branch_policy are relayed as sent.
type Environment map[string]json.RawMessage

type encryptedSecret struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

// ListRepos lists up to 100 repositories of the user, most recently updated first.
func (c *Client) ListRepos(ctx context.Context, token string) (json.RawMessage, error) {
	q := url.Values{"per_page": {"100"}, "sort": {"updated"}}
	return c.Do(ctx, token, http.MethodGet, "/user/repos", q, nil)
}

// ListSecrets lists up to 100 Actions secret names of a repository.
func (c *Client) ListSecrets(ctx context.Context, token, owner, repo string) (json.RawMessage, error) {
	q := url.Values{"per_page": {"100"}}
	return c.Do(ctx, token, http.MethodGet, repoPath(owner, repo, "actions", "secrets"), q, nil)
}

// GetSecretsPublicKey fetches the current sealing key of a repository.
func (c *Client) GetSecretsPublicKey(ctx context.Context, token, owner, repo string) (*PublicKey, error) {
	raw, err := c.Do(ctx, token, http.MethodGet, repoPath(owner, repo, "actions", "secrets", "public-key"), nil, nil)
	if err != nil {
		return nil, err
	}
	key, err := decode[PublicKey](raw)
	if err != nil {
		return nil, err
	}
	if key.Key == "" || key.KeyID == "" {
		return nil, errors.Join(ErrDecodeFailed, errors.New("public key response is incomplete"))
	}
	return key, nil
}

// PutSecret creates or updates an Actions secret.
// The public key is fetched fresh for every write and the value is sealed
// before it leaves the process.
func (c *Client) PutSecret(ctx context.Context, token, owner, repo, name, value string) (json.RawMessage, error) {
	key, err := c.GetSecretsPublicKey(ctx, token, owner, repo)
	if err != nil {
		return nil, err
	}

	sealed, err := sealbox.Seal(key.Key, []byte(value))
	if err != nil {
		return nil, err
	}

	body := encryptedSecret{EncryptedValue: sealed, KeyID: key.KeyID}
	return c.Do(ctx, token, http.MethodPut, repoPath(owner, repo, "actions", "secrets", url.PathEscape(name)), nil, body)
}

// CreateVariable creates an Actions variable.
func (c *Client) CreateVariable(ctx context.Context, token, owner, repo string, v Variable) (json.RawMessage, error) {
	return c.Do(ctx, token, http.MethodPost, repoPath(owner, repo, "actions", "variables"), nil, v)
}

// UpdateVariable changes the value of an Actions variable.
func (c *Client) UpdateVariable(ctx context.Context, token, owner, repo, name, value string) (json.RawMessage, error) {
	body := struct {
		Value string `json:"value"`
	}{Value: value}
	return c.Do(ctx, token, http.MethodPatch, repoPath(owner, repo, "actions", "variables", url.PathEscape(name)), nil, body)
}

// DeleteVariable removes an Actions variable.
func (c *Client) DeleteVariable(ctx context.Context, token, owner, repo, name string) (json.RawMessage, error) {
	return c.Do(ctx, token, http.MethodDelete, repoPath(owner, repo, "actions", "variables", url.PathEscape(name)), nil, nil)
}

// PutEnvironment creates or updates a deployment environment.
func (c *Client) PutEnvironment(ctx context.Context, token, owner, repo, name string, env Environment) (json.RawMessage, error) {
	if env == nil {
		env = Environment{}
	}
	return c.Do(ctx, token, http.MethodPut, repoPath(owner, repo, "environments", url.PathEscape(name)), nil, env)
}

// DeleteCaches deletes Actions caches matching key and optional ref.
// Empty filters are omitted from the query.
func (c *Client) DeleteCaches(ctx context.Context, token, owner, repo, key, ref string) (json.RawMessage, error) {
	q := url.Values{}
	if key != "" {
		q.Set("key", key)
	}
	if ref != "" {
		q.Set("ref", ref)
	}
	return c.Do(ctx, token, http.MethodDelete, repoPath(owner, repo, "actions", "caches"), q, nil)
}
