/*
Package session implements per-session compound set management.

It provides safe concurrent access to the compound store so that a user can
resolve compounds once and reuse them across design computations, with
read-modify-write operations serialized per session.
*/
package session
