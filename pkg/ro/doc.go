// Package ro holds the Restful Objects transfer objects consumed by the
// client: links, polymorphic member values, domain objects, menu bars and
// action results. Representations are decoded with encoding/json; the
// untyped "value" field goes through the ordered resolver in pkg/decode.
package ro
