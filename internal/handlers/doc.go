// Package handlers declares the HTTP routes of ghkeeper.
//
// Auth runs the GitHub OAuth login and reports session status. API proxies
// repository operations to GitHub using the token stored in the caller's
// session. Pages serves the localized UI shell.
//
//	app := internal.New(
//	    internal.WithSession(sessions),
//	    internal.WithHandlers(
//	        handlers.NewAuth(provider, locales),
//	        handlers.NewAPI(gh, middlewares.Timeout(30*time.Second)),
//	        handlers.NewPages(locales, os.DirFS(uiDir)),
//	    ),
//	)
package handlers
