// Package utils exposes reusable helpers consumed by every subcommand.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI, plus
// the context accessor carrying per-invocation values between the root
// command and the subcommands.
package utils
