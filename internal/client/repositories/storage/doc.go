// Package storage is the client's persistent key/value store, the local
// counterpart of browser localStorage.
//
// Values are plain strings addressed by a well-known key ("id_token",
// "user_data"). A missing key is not an error: Get reports ok == false.
//
// The SQLite implementation runs against a dbx.DBTX, so the same repository
// type works on a *sql.DB and inside a transaction:
//
//	err := dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := storage.NewSQLiteRepository(tx)
//	    if err := repo.Set(ctx, "id_token", token); err != nil {
//	        return err
//	    }
//	    return repo.Set(ctx, "user_data", userJSON)
//	})
//
// Errors are wrapped with the operation and key, e.g.
// "failed to set storage[id_token]: ...".
package storage
