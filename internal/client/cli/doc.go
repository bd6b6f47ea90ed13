// Package cli implements shopai-guest, the device-side tool that keeps an
// anonymous credential on disk and queries the caller's quota.
//
// Commands:
//
//	credential   ensure a valid credential exists and print it
//	status       show the stored credential and the server's quota view
//	authorize    consume one unit of quota
//	forget       delete the stored credential
//
// Output is human-readable on a terminal and JSON otherwise, or always JSON
// with --json.
package cli
