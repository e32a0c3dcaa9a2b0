// Package api handles incoming HTTP requests, routing, and response
// formatting. Handlers hand raw request bodies to the validation pipelines,
// apply the resulting payloads through the stores, and translate errors into
// the enveloped responses clients see.
package api
