// Package client fetches Restful-Objects representations over HTTP and
// decodes them into the ro and layout types.
package client
