/*
Package ports defines the driven ports (interfaces) for the keybind engine.

These interfaces decouple profile handling from storage backends, allowing
profiles to live on disk, in Redis, in a Loam vault, or in memory.

# Key Interfaces

  - ProfileSource: Read access to raw persisted profiles.
  - ProfileStore: Read and write access to raw persisted profiles.
  - DistributedLocker: Distributed locking for concurrent profile migration.
*/
package ports
