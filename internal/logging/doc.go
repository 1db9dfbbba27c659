// Package logging builds the slog logger used by the warpsync CLI.
package logging
