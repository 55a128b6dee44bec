// Package profiles coordinates loading, saving, and migrating stored profiles.
//
// A Manager serializes access per profile ID with reference-counted mutexes,
// optionally backed by a ports.DistributedLocker when several processes share
// one store.
package profiles
