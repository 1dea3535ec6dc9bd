// Package orchestrator wires the decode → layout → widget → page → render
// pipeline behind a single entry point. Callers hand over RO payloads (raw or
// decoded) and receive rendered bytes.
package orchestrator
