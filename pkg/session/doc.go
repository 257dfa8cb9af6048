// Package session defines the server-side session payload and the Store
// capability used by the session manager.
//
// Three backends are provided:
//
//   - [CacheStore] over pkg/cache (in-memory or Redis)
//   - [PostgresStore] over a pgx pool, schema in [Migrations]
//   - [BoltStore] over a local bbolt file
//
// Every backend returns [ErrNotFound] for missing or expired ids and treats
// Delete of a missing id as success.
package session
