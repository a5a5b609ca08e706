// Package deadletter archives payloads the relay gave up on so operators can
// inspect them.
//
// Two stores are provided. Both implement relay.DeadLetterSink and keep only
// the most recent entries:
//
//   - RedisStore keeps entries in a capped Redis list (LPUSH + LTRIM).
//   - MemoryStore keeps them in a bounded in-process ring; used when Redis is
//     not configured and in tests.
//
//	store := deadletter.NewRedisStore(client, deadletter.WithKey("hookrelay:deadletters"))
//	reg, err := relay.NewRegistry(sender, relay.WithDeadLetterSink(store))
//
//	entries, err := store.Recent(ctx, 50) // newest first
//
// Entries never contain the destination token.
package deadletter
