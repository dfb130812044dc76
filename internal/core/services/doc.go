// Package services implements the driving ports.
//
// Services orchestrate the chaining engine, the ontology and the stores.
// They depend only on domain, ports and the engine, never on adapters.
package services
