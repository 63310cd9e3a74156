// Package regions supplies region geometry to the layout engine.
//
// The engine resolves named regions through a synchronous lookup, so region
// data that lives elsewhere is fetched up front and flattened into a [Table].
// Two remote stores are provided:
//
//   - [RedisStore]: a Redis hash of ref -> JSON rectangle
//   - [MongoStore]: a MongoDB collection of {ref, left, top, width, height}
//
// [Prefetch] drains a [Store] into a Table, retrying transient failures with
// exponential backoff:
//
//	store, client, err := regions.OpenRedisStore("redis://localhost:6379/0", "")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	table, err := regions.Prefetch(ctx, store, scene.Refs(), regions.PrefetchOptions{})
//	if err != nil {
//	    return err
//	}
//	engine := connector.NewEngine(table, target.FixedOrigin{})
//
// Missing references are not an error: they are absent from the table and the
// engine falls back to the zero rectangle for them.
package regions
