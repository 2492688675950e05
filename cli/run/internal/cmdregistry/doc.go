// Package cmdregistry defines a lightweight command registry used by the
// CLI entrypoint. It maps subcommand names to specs that own their
// description, argument schema, and handler, so individual command
// implementations can live in separate packages while the dispatcher
// stays focused on argument parsing and exit-code translation.
package cmdregistry
