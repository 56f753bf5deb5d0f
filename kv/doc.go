// Package kv defines the [Store] interface for durable key-value backends
// used to mirror state outside the process, and provides these
// implementations:
//
//   - [MemoryStore]: in-memory values that are lost on restart.
//   - [SQLiteStore]: values persisted in a SQLite database.
//   - [FileStore]: one file per key in a directory.
//   - [TieredStore]: a memory cache in front of any persistent Store.
//
// A Redis backend lives in the kv/redis subpackage. Custom backends can be
// created by implementing the [Store] interface.
package kv
