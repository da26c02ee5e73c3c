// Package commands defines the payqr CLI.
//
// Commands
//
//   - currencies  List the supported currencies
//   - classify    Detect the currency of an address
//   - uri         Print the payment URI for an address
//   - render      Write a styled QR code to a file
//
// All commands work offline on the same packages the HTTP server uses.
package commands
