// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, using database/sql over the pgx
// stdlib driver. Schema migrations live under migrations/ and are managed
// with goose.
package postgres
