// Package cmd implements the intune-apps command line.
//
// The root command runs one full inventory pass and prints a summary table. Flags
// override the matching environment variables; the client secret is read from the
// environment (or .env) only.
package cmd
