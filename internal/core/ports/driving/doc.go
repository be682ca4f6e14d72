// Package driving defines the inbound (driving) port interfaces.
//
// Driving ports are the application's use-case surface: the CLI (and any
// future HTTP layer) talks to these interfaces, which core services
// implement. They express operations in domain terms and surface domain
// sentinel errors.
package driving
