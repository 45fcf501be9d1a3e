// Package utils holds the configuration and logging plumbing shared by the
// repometa command: a Viper-backed ConfigurationLoader and a zap LoggerFactory.
package utils
