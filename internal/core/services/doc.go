// Package services implements the driving port interfaces.
// The credential service holds the interception pipeline: policy
// evaluation, the token cache codec, and the mint-on-stale refresh
// cycle, orchestrated over the driven ports.
//
// Services are pure Go with no external dependencies.
package services
