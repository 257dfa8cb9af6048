package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/middlewares"
	"github.com/dmitrymomot/ghkeeper/pkg/github"
)

// Gateway is the set of GitHub calls the API exposes.
type Gateway interface {
	ListRepos(ctx context.Context, token string) (json.RawMessage, error)
	ListSecrets(ctx context.Context, token, owner, repo string) (json.RawMessage, error)
	PutSecret(ctx context.Context, token, owner, repo, name, value string) (json.RawMessage, error)
	CreateVariable(ctx context.Context, token, owner, repo string, v github.Variable) (json.RawMessage, error)
	UpdateVariable(ctx context.Context, token, owner, repo, name, value string) (json.RawMessage, error)
	DeleteVariable(ctx context.Context, token, owner, repo, name string) (json.RawMessage, error)
	PutEnvironment(ctx context.Context, token, owner, repo, name string, env github.Environment) (json.RawMessage, error)
	DeleteCaches(ctx context.Context, token, owner, repo, key, ref string) (json.RawMessage, error)
}

var _ Gateway = (*github.Client)(nil)

// API proxies repository operations to GitHub with the session's token.
// Every route requires a session.
type API struct {
	gh Gateway
	mw []internal.Middleware
}

// NewAPI creates the API handler. mw runs on every route after the session check.
func NewAPI(gh Gateway, mw ...internal.Middleware) *API {
	return &API{
		gh: gh,
		mw: append([]internal.Middleware{middlewares.RequireSession()}, mw...),
	}
}

// Routes implements internal.Handler.
func (h *API) Routes(r internal.Router) {
	r.GET("/api/repos", h.listRepos, h.mw...)
	r.GET("/api/repos/{owner}/{repo}/secrets", h.listSecrets, h.mw...)
	r.PUT("/api/repos/{owner}/{repo}/secrets/{name}", h.putSecret, h.mw...)
	r.POST("/api/repos/{owner}/{repo}/variables", h.createVariable, h.mw...)
	r.PATCH("/api/repos/{owner}/{repo}/variables/{name}", h.updateVariable, h.mw...)
	r.DELETE("/api/repos/{owner}/{repo}/variables/{name}", h.deleteVariable, h.mw...)
	r.PUT("/api/repos/{owner}/{repo}/environments/{name}", h.putEnvironment, h.mw...)
	r.DELETE("/api/repos/{owner}/{repo}/caches", h.deleteCaches, h.mw...)
}

type secretBody struct {
	Value string `json:"value"`
}

type variableBody struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// maxWaitTimer is the largest wait_timer GitHub accepts, in minutes.
const maxWaitTimer = 43200

func (h *API) listRepos(c internal.Context) error {
	token, err := accessToken(c)
	if err != nil {
		return err
	}
	return relay(c)(h.gh.ListRepos(c, token))
}

func (h *API) listSecrets(c internal.Context) error {
	token, owner, repo, err := repoRequest(c)
	if err != nil {
		return err
	}
	return relay(c)(h.gh.ListSecrets(c, token, owner, repo))
}

func (h *API) putSecret(c internal.Context) error {
	token, owner, repo, name, err := namedRequest(c)
	if err != nil {
		return err
	}

	var body secretBody
	if err := c.BindJSON(&body); err != nil {
		return err
	}
	if body.Value == "" {
		return internal.ErrBadRequest("Missing secret value")
	}

	return relay(c)(h.gh.PutSecret(c, token, owner, repo, name, body.Value))
}

func (h *API) createVariable(c internal.Context) error {
	token, owner, repo, err := repoRequest(c)
	if err != nil {
		return err
	}

	var body variableBody
	if err := c.BindJSON(&body); err != nil {
		return err
	}
	if body.Name == "" || body.Value == "" {
		return internal.ErrBadRequest("Missing variable name or value")
	}

	return relay(c)(h.gh.CreateVariable(c, token, owner, repo, github.Variable{Name: body.Name, Value: body.Value}))
}

func (h *API) updateVariable(c internal.Context) error {
	token, owner, repo, name, err := namedRequest(c)
	if err != nil {
		return err
	}

	var body secretBody
	if err := c.BindJSON(&body); err != nil {
		return err
	}
	if body.Value == "" {
		return internal.ErrBadRequest("Missing variable value")
	}

	return relay(c)(h.gh.UpdateVariable(c, token, owner, repo, name, body.Value))
}

func (h *API) deleteVariable(c internal.Context) error {
	token, owner, repo, name, err := namedRequest(c)
	if err != nil {
		return err
	}
	return relay(c)(h.gh.DeleteVariable(c, token, owner, repo, name))
}

func (h *API) putEnvironment(c internal.Context) error {
	token, owner, repo, name, err := namedRequest(c)
	if err != nil {
		return err
	}

	var body github.Environment
	if err := c.BindJSON(&body); err != nil {
		return err
	}
	if raw, ok := body["wait_timer"]; ok {
		var minutes int
		if err := json.Unmarshal(raw, &minutes); err != nil || minutes < 0 || minutes > maxWaitTimer {
			return internal.ErrBadRequest("wait_timer must be between 0 and 43200")
		}
	}

	return relay(c)(h.gh.PutEnvironment(c, token, owner, repo, name, body))
}

func (h *API) deleteCaches(c internal.Context) error {
	token, owner, repo, err := repoRequest(c)
	if err != nil {
		return err
	}
	return relay(c)(h.gh.DeleteCaches(c, token, owner, repo, c.Query("key"), c.Query("ref")))
}

// accessToken reads the token of the session loaded by RequireSession.
func accessToken(c internal.Context) (string, error) {
	sess, err := c.RequireSession()
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func repoRequest(c internal.Context) (token, owner, repo string, err error) {
	owner, repo = c.Param("owner"), c.Param("repo")
	if owner == "" || repo == "" {
		return "", "", "", internal.ErrBadRequest("Missing owner or repo")
	}
	token, err = accessToken(c)
	return token, owner, repo, err
}

func namedRequest(c internal.Context) (token, owner, repo, name string, err error) {
	owner, repo, name = c.Param("owner"), c.Param("repo"), c.Param("name")
	if owner == "" || repo == "" || name == "" {
		return "", "", "", "", internal.ErrBadRequest("Missing owner, repo, or name")
	}
	token, err = accessToken(c)
	return token, owner, repo, name, err
}

// relay writes an upstream result: raw JSON as 200, an empty body as 204.
func relay(c internal.Context) func(json.RawMessage, error) error {
	return func(raw json.RawMessage, err error) error {
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSONRaw(http.StatusOK, raw)
	}
}
