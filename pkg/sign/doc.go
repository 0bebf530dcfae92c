// Package sign implements the gateway side of the transparent-redirect
// contract: producing the signed tr_data token for a flattened field payload
// and verifying the signed query string the gateway posts back. The HMAC-SHA1
// construction and the pipe-delimited token layout are the gateway's wire
// format; this package adds no cryptography of its own beyond calling the
// standard library primitives that format requires.
package sign
