// Package memory is an in-process implementation of the repositories and the
// unit of work. It backs STORAGE_DRIVER=memory and the engine tests.
//
// Writes made inside a unit of work are staged and become visible to other
// units of work only on Commit. GetForUpdate takes a per-key lock that is held
// until Commit or Rollback, which gives the same carrier-then-shipment
// serialization as row locks in the postgres adapter.
package memory
