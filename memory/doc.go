// Package memory implements the sparse, byte addressable store used as the
// interpreter's main memory.
//
// The store is a fixed array of buckets, each a singly linked chain of cells.
// An address lands in bucket abs(address) mod buckets; only addresses that
// have been written consume a cell. Reads of untouched addresses return zero.
package memory
